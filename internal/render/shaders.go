package render

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Default shader file names inside the asset directory.
const (
	DefaultVertexShader   = "vertex.glsl"
	DefaultFragmentShader = "fragment.glsl"
)

// LoadShaders reads a vertex/fragment pair from dir. A missing file is
// reported as ErrShaderNotFound.
func LoadShaders(dir, vertexName, fragmentName string) (ShaderSource, error) {
	if vertexName == "" {
		vertexName = DefaultVertexShader
	}
	if fragmentName == "" {
		fragmentName = DefaultFragmentShader
	}

	vert, err := readShader(filepath.Join(dir, vertexName))
	if err != nil {
		return ShaderSource{}, err
	}
	frag, err := readShader(filepath.Join(dir, fragmentName))
	if err != nil {
		return ShaderSource{}, err
	}
	return ShaderSource{Vertex: vert, Fragment: frag}, nil
}

func readShader(path string) (string, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("%w: %s", ErrShaderNotFound, path)
	}
	if err != nil {
		return "", fmt.Errorf("render: read shader %s: %w", path, err)
	}
	return string(data), nil
}
