//go:build cgo

// Package opengl is the OpenGL 4.1 core render device. It must be created and
// used on the thread that owns the current GL context.
package opengl

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/vovakirdan/helix/internal/mesh"
	"github.com/vovakirdan/helix/internal/render"
)

// Attribute locations used by the shaders.
const (
	attribPosition = 0
	attribNormal   = 2
)

type glMesh struct {
	vao, vbo uint32
	vertices int32
}

type glProgram struct {
	id                              uint32
	model, view, proj, color, light int32
}

// Device draws through the current OpenGL context.
type Device struct {
	meshes   map[render.MeshHandle]glMesh
	programs map[render.ProgramHandle]glProgram
	next     uint32
}

// New initializes the GL function pointers and the fixed pipeline state.
func New() (*Device, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("opengl: init: %w", err)
	}
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.CULL_FACE)
	return &Device{
		meshes:   make(map[render.MeshHandle]glMesh),
		programs: make(map[render.ProgramHandle]glProgram),
	}, nil
}

// Version returns the GL version string of the context.
func (d *Device) Version() string {
	return gl.GoStr(gl.GetString(gl.VERSION))
}

// Viewport resizes the drawing area, in framebuffer pixels.
func (d *Device) Viewport(w, h int) {
	gl.Viewport(0, 0, int32(w), int32(h))
}

func (d *Device) UploadMesh(m *mesh.Mesh) (render.MeshHandle, error) {
	if m == nil || len(m.Data) == 0 {
		return 0, fmt.Errorf("opengl: upload empty mesh")
	}
	var gm glMesh
	gl.GenVertexArrays(1, &gm.vao)
	gl.BindVertexArray(gm.vao)
	gl.GenBuffers(1, &gm.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, gm.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(m.Data)*4, gl.Ptr(m.Data), gl.STATIC_DRAW)

	stride := int32(m.Stride * 4)
	gl.EnableVertexAttribArray(attribPosition)
	gl.VertexAttribPointerWithOffset(attribPosition, 3, gl.FLOAT, false, stride, 0)
	if m.HasNormals() {
		gl.EnableVertexAttribArray(attribNormal)
		gl.VertexAttribPointerWithOffset(attribNormal, 3, gl.FLOAT, false, stride, 3*4)
	}
	gl.BindVertexArray(0)

	gm.vertices = int32(m.VertexCount())
	d.next++
	h := render.MeshHandle(d.next)
	d.meshes[h] = gm
	return h, nil
}

func (d *Device) DeleteMesh(h render.MeshHandle) {
	gm, ok := d.meshes[h]
	if !ok {
		return
	}
	gl.DeleteBuffers(1, &gm.vbo)
	gl.DeleteVertexArrays(1, &gm.vao)
	delete(d.meshes, h)
}

func (d *Device) CompileProgram(src render.ShaderSource) (render.ProgramHandle, error) {
	vs, err := compileShader(src.Vertex, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(vs)
	fs, err := compileShader(src.Fragment, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(fs)

	id := gl.CreateProgram()
	gl.AttachShader(id, vs)
	gl.AttachShader(id, fs)
	gl.LinkProgram(id)

	var status int32
	gl.GetProgramiv(id, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		msg := infoLog(id, gl.GetProgramiv, gl.GetProgramInfoLog)
		gl.DeleteProgram(id)
		return 0, fmt.Errorf("%w: link: %s", render.ErrShaderCompile, msg)
	}

	d.next++
	p := render.ProgramHandle(d.next)
	d.programs[p] = glProgram{
		id:    id,
		model: uniform(id, "M"),
		view:  uniform(id, "V"),
		proj:  uniform(id, "P"),
		color: uniform(id, "ObjectColor"),
		light: uniform(id, "LightPosition_worldspace"),
	}
	return p, nil
}

func (d *Device) DeleteProgram(p render.ProgramHandle) {
	gp, ok := d.programs[p]
	if !ok {
		return
	}
	gl.DeleteProgram(gp.id)
	delete(d.programs, p)
}

func (d *Device) BeginFrame(clear mgl32.Vec3) {
	gl.ClearColor(clear[0], clear[1], clear[2], 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

func (d *Device) Draw(p render.ProgramHandle, h render.MeshHandle, u render.Uniforms) {
	gp, ok := d.programs[p]
	gm, live := d.meshes[h]
	if !ok || !live {
		return
	}
	gl.UseProgram(gp.id)
	gl.UniformMatrix4fv(gp.model, 1, false, &u.Model[0])
	gl.UniformMatrix4fv(gp.view, 1, false, &u.View[0])
	gl.UniformMatrix4fv(gp.proj, 1, false, &u.Projection[0])
	gl.Uniform3fv(gp.color, 1, &u.Color[0])
	gl.Uniform3fv(gp.light, 1, &u.Light[0])
	gl.BindVertexArray(gm.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, gm.vertices)
	gl.BindVertexArray(0)
}

func compileShader(source string, kind uint32) (uint32, error) {
	if source == "" {
		return 0, fmt.Errorf("%w: empty source", render.ErrShaderCompile)
	}
	shader := gl.CreateShader(kind)
	csrc, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csrc, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		msg := infoLog(shader, gl.GetShaderiv, gl.GetShaderInfoLog)
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("%w: %s", render.ErrShaderCompile, msg)
	}
	return shader, nil
}

func infoLog(id uint32, getiv func(uint32, uint32, *int32), getLog func(uint32, int32, *int32, *uint8)) string {
	var n int32
	getiv(id, gl.INFO_LOG_LENGTH, &n)
	if n == 0 {
		return "no info log"
	}
	buf := strings.Repeat("\x00", int(n+1))
	getLog(id, n, nil, gl.Str(buf))
	return strings.TrimRight(buf, "\x00\n")
}

func uniform(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

var _ render.Device = (*Device)(nil)
