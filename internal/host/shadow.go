package host

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// shadowCopy copies src into dir under a name unique to generation, so the
// source file can be rebuilt while the copy is loaded and the dynamic loader
// never sees the same path twice.
func shadowCopy(src, dir string, generation int) (string, error) {
	if dir == "" {
		dir = os.TempDir()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("host: shadow dir: %w", err)
	}

	in, err := os.Open(src)
	if err != nil {
		return "", fmt.Errorf("host: open module: %w", err)
	}
	defer in.Close()

	base := filepath.Base(src)
	ext := filepath.Ext(base)
	pattern := fmt.Sprintf("%s-%d-*%s", strings.TrimSuffix(base, ext), generation, ext)
	out, err := os.CreateTemp(dir, pattern)
	if err != nil {
		return "", fmt.Errorf("host: shadow copy: %w", err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(out.Name())
		return "", fmt.Errorf("host: shadow copy: %w", err)
	}
	if err := out.Close(); err != nil {
		os.Remove(out.Name())
		return "", fmt.Errorf("host: shadow copy: %w", err)
	}
	return out.Name(), nil
}
