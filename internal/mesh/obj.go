package mesh

import (
	"bufio"
	"fmt"
	"io"
)

// WriteOBJ writes the shape as Wavefront-style text: v and vn records followed
// by 1-based f records. Without normals faces are written as "f i j k".
func WriteOBJ(w io.Writer, s *Shape, withNormals bool) error {
	bw := bufio.NewWriter(w)

	for _, p := range s.Positions {
		fmt.Fprintf(bw, "v %.4f %.4f %.4f\n", p[0], p[1], p[2])
	}
	if withNormals {
		for _, n := range s.Normals {
			fmt.Fprintf(bw, "vn %.4f %.4f %.4f\n", n[0], n[1], n[2])
		}
	}
	for _, f := range s.Faces {
		if withNormals {
			fmt.Fprintf(bw, "f %d//%d %d//%d %d//%d\n",
				f.V[0]+1, f.N[0]+1, f.V[1]+1, f.N[1]+1, f.V[2]+1, f.N[2]+1)
			continue
		}
		fmt.Fprintf(bw, "f %d %d %d\n", f.V[0]+1, f.V[1]+1, f.V[2]+1)
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("mesh: write obj: %w", err)
	}
	return nil
}
