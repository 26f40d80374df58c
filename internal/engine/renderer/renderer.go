// Package renderer draws the per-frame output of the animation core:
// gore panel surfaces, their outline overlays, and the wandering
// agents. It owns all GPU resources and caches per-panel buffers keyed
// by (sphere, panel) slot.
package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/hollowmoon/gorefold/internal/engine/anim"
	"github.com/hollowmoon/gorefold/internal/engine/camera"
	"github.com/hollowmoon/gorefold/internal/engine/shader"
	"github.com/hollowmoon/gorefold/internal/logger"
	"github.com/hollowmoon/gorefold/pkg/math"
)

const (
	fovY      = float32(45.0 * math.Pi / 180.0)
	nearPlane = 0.1
	farPlane  = 100.0

	ballPointSize = 9.0
)

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
}

// Renderer handles all OpenGL drawing. Create it after the GL context
// exists, on the same thread.
type Renderer struct {
	config Config

	panelProgram uint32
	puModel      int32
	puView       int32
	puProj       int32
	puColor      int32
	puAlpha      int32
	puLight      int32

	flatProgram uint32
	fuModel     int32
	fuView      int32
	fuProj      int32
	fuColor     int32

	pointProgram uint32
	buView       int32
	buProj       int32
	buSize       int32

	panels map[[2]int]*panelBuffers

	lineVAO uint32
	lineVBO uint32
	lineCap int

	ballVAO uint32
	ballVBO uint32
	ballCap int
}

// New creates the renderer and compiles its shader programs.
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config: cfg,
		panels: make(map[[2]int]*panelBuffers),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LEQUAL)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Enable(gl.MULTISAMPLE)
	gl.Enable(gl.PROGRAM_POINT_SIZE)
	gl.ClearColor(0.03, 0.04, 0.06, 1.0)

	var err error
	if r.panelProgram, err = shader.CompileProgram(panelVertexSrc, panelFragmentSrc); err != nil {
		return nil, fmt.Errorf("panel program: %w", err)
	}
	r.puModel = shader.MustGetUniform(r.panelProgram, "uModel")
	r.puView = shader.MustGetUniform(r.panelProgram, "uView")
	r.puProj = shader.MustGetUniform(r.panelProgram, "uProj")
	r.puColor = shader.MustGetUniform(r.panelProgram, "uColor")
	r.puAlpha = shader.MustGetUniform(r.panelProgram, "uAlpha")
	r.puLight = shader.MustGetUniform(r.panelProgram, "uLightDir")

	if r.flatProgram, err = shader.CompileProgram(flatVertexSrc, flatFragmentSrc); err != nil {
		return nil, fmt.Errorf("flat program: %w", err)
	}
	r.fuModel = shader.MustGetUniform(r.flatProgram, "uModel")
	r.fuView = shader.MustGetUniform(r.flatProgram, "uView")
	r.fuProj = shader.MustGetUniform(r.flatProgram, "uProj")
	r.fuColor = shader.MustGetUniform(r.flatProgram, "uColor")

	if r.pointProgram, err = shader.CompileProgram(pointVertexSrc, pointFragmentSrc); err != nil {
		return nil, fmt.Errorf("point program: %w", err)
	}
	r.buView = shader.MustGetUniform(r.pointProgram, "uView")
	r.buProj = shader.MustGetUniform(r.pointProgram, "uProj")
	r.buSize = shader.MustGetUniform(r.pointProgram, "uPointSize")

	r.createLineBuffers()
	r.createBallBuffers()

	return r, nil
}

// Close releases all GPU resources.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	for key, buf := range r.panels {
		buf.destroy()
		delete(r.panels, key)
	}
	if r.lineVAO != 0 {
		gl.DeleteVertexArrays(1, &r.lineVAO)
		gl.DeleteBuffers(1, &r.lineVBO)
	}
	if r.ballVAO != 0 {
		gl.DeleteVertexArrays(1, &r.ballVAO)
		gl.DeleteBuffers(1, &r.ballVBO)
	}
	for _, p := range []uint32{r.panelProgram, r.flatProgram, r.pointProgram} {
		if p != 0 {
			gl.DeleteProgram(p)
		}
	}
}

// Resize handles a window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
}

// DisposePanel releases the GPU buffers of one panel slot. Satisfies
// the scene's dispose hook; slots that were never uploaded are a no-op.
func (r *Renderer) DisposePanel(sphere, panel int) {
	key := [2]int{sphere, panel}
	if buf, ok := r.panels[key]; ok {
		buf.destroy()
		delete(r.panels, key)
	}
}

// Render draws one frame.
func (r *Renderer) Render(frame anim.Frame, cam *camera.OrbitCamera) {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	aspect := float32(r.config.Width) / float32(r.config.Height)
	proj := math.Perspective(fovY, aspect, nearPlane, farPlane)
	view := cam.ViewMatrix()

	r.drawPanels(frame, view, proj)
	r.drawOutlines(frame, view, proj)
	r.drawBalls(frame, view, proj)
}

func (r *Renderer) drawPanels(frame anim.Frame, view, proj math.Mat4) {
	gl.UseProgram(r.panelProgram)
	gl.UniformMatrix4fv(r.puView, 1, false, &view[0])
	gl.UniformMatrix4fv(r.puProj, 1, false, &proj[0])
	gl.Uniform3f(r.puLight, 0.4, 0.8, 0.6)

	for _, p := range frame.Panels {
		key := [2]int{p.Sphere, p.Index}
		buf, ok := r.panels[key]
		if !ok {
			buf = newPanelBuffers(p.Mesh)
			r.panels[key] = buf
		} else if p.Dirty {
			buf.update(p.Mesh)
		}

		model := p.Transform
		gl.UniformMatrix4fv(r.puModel, 1, false, &model[0])
		gl.Uniform3f(r.puColor, p.Color[0], p.Color[1], p.Color[2])
		gl.Uniform1f(r.puAlpha, 1.0)

		gl.BindVertexArray(buf.vao)
		gl.DrawElements(gl.TRIANGLES, buf.indexCount, gl.UNSIGNED_INT, nil)
	}
	gl.BindVertexArray(0)
}

func (r *Renderer) drawOutlines(frame anim.Frame, view, proj math.Mat4) {
	gl.UseProgram(r.flatProgram)
	gl.UniformMatrix4fv(r.fuView, 1, false, &view[0])
	gl.UniformMatrix4fv(r.fuProj, 1, false, &proj[0])

	for _, p := range frame.Panels {
		alpha := p.CircleAlpha
		if p.GoreAlpha > alpha {
			alpha = p.GoreAlpha
		}
		if alpha < 0.01 {
			continue
		}

		boundary := p.Mesh.BoundaryPositions()
		if len(boundary) < 2 {
			continue
		}
		r.uploadLine(boundary)

		model := p.Transform
		gl.UniformMatrix4fv(r.fuModel, 1, false, &model[0])
		// Outlines are the panel color pushed toward white.
		gl.Uniform4f(r.fuColor,
			p.Color[0]*0.4+0.6,
			p.Color[1]*0.4+0.6,
			p.Color[2]*0.4+0.6,
			alpha)

		gl.BindVertexArray(r.lineVAO)
		gl.DrawArrays(gl.LINE_LOOP, 0, int32(len(boundary)))
	}
	gl.BindVertexArray(0)
}

func (r *Renderer) drawBalls(frame anim.Frame, view, proj math.Mat4) {
	if len(frame.Balls) == 0 {
		return
	}

	// Interleaved position + RGBA per agent.
	data := make([]float32, 0, len(frame.Balls)*7)
	for _, b := range frame.Balls {
		data = append(data,
			b.Position.X, b.Position.Y, b.Position.Z,
			b.Color[0], b.Color[1], b.Color[2], b.Alpha)
	}

	gl.BindVertexArray(r.ballVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.ballVBO)
	if len(data) > r.ballCap {
		gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.DYNAMIC_DRAW)
		r.ballCap = len(data)
	} else {
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(data)*4, gl.Ptr(data))
	}

	gl.UseProgram(r.pointProgram)
	gl.UniformMatrix4fv(r.buView, 1, false, &view[0])
	gl.UniformMatrix4fv(r.buProj, 1, false, &proj[0])
	gl.Uniform1f(r.buSize, ballPointSize)

	// Agents sit just above their panel; depth writes off so fading
	// points never punch holes in the surface behind them.
	gl.DepthMask(false)
	gl.DrawArrays(gl.POINTS, 0, int32(len(frame.Balls)))
	gl.DepthMask(true)
	gl.BindVertexArray(0)
}

func (r *Renderer) createLineBuffers() {
	gl.GenVertexArrays(1, &r.lineVAO)
	gl.BindVertexArray(r.lineVAO)
	gl.GenBuffers(1, &r.lineVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.lineVBO)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 12, 0)
	gl.BindVertexArray(0)
}

func (r *Renderer) createBallBuffers() {
	gl.GenVertexArrays(1, &r.ballVAO)
	gl.BindVertexArray(r.ballVAO)
	gl.GenBuffers(1, &r.ballVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.ballVBO)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 28, 0)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 4, gl.FLOAT, false, 28, uintptr(12))
	gl.BindVertexArray(0)
}

// uploadLine streams a boundary loop into the shared line buffer.
func (r *Renderer) uploadLine(points []math.Vec3) {
	size := len(points) * int(unsafe.Sizeof(math.Vec3{}))
	gl.BindBuffer(gl.ARRAY_BUFFER, r.lineVBO)
	if size > r.lineCap {
		gl.BufferData(gl.ARRAY_BUFFER, size, unsafe.Pointer(&points[0]), gl.DYNAMIC_DRAW)
		r.lineCap = size
	} else {
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, size, unsafe.Pointer(&points[0]))
	}
}
