package util

import (
	"fmt"
	"math"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/pkg/errors"

	"github.com/memmaker/spritefont/engine/glhf"
)

type GlApplication struct {
	Window          *glfw.Window
	TerminateFunc   func()
	UpdateFunc      func(elapsed float64)
	DrawFunc        func(elapsed float64)
	KeyHandler      func(key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey)
	ResizeHandler   func(width, height int)
	WindowWidth     int
	WindowHeight    int
	ClearColor      [4]float32
	ticks           uint64
	FramesPerSecond float64
	FPSRunningAvg   float64
	FPSMin          float64
	FPSMax          float64
}

func (a *GlApplication) KeyCallback(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if key == glfw.KeyEscape && action == glfw.Press {
		w.SetShouldClose(true)
		return
	}
	if a.KeyHandler != nil {
		a.KeyHandler(
			key,
			scancode,
			action,
			mods,
		)
	}
}

func (a *GlApplication) FramebufferSizeCallback(w *glfw.Window, width, height int) {
	a.WindowWidth, a.WindowHeight = width, height
	glhf.Bounds(0, 0, width, height)
	if a.ResizeHandler != nil {
		a.ResizeHandler(width, height)
	}
}

// Run drives the render loop until the window is closed. It must be called
// on the thread that owns the GL context.
func (a *GlApplication) Run() {
	if a.TerminateFunc != nil {
		defer a.TerminateFunc()
	}
	a.Window.SetKeyCallback(a.KeyCallback)
	a.Window.SetFramebufferSizeCallback(a.FramebufferSizeCallback)

	previousTime := glfw.GetTime()
	for !a.Window.ShouldClose() {
		glhf.Clear(a.ClearColor[0], a.ClearColor[1], a.ClearColor[2], a.ClearColor[3])

		time := glfw.GetTime()
		elapsed := time - previousTime
		previousTime = time
		if a.UpdateFunc != nil {
			a.UpdateFunc(elapsed)
		}
		if a.DrawFunc != nil {
			a.DrawFunc(elapsed)
		}

		if elapsed > 0 {
			a.FramesPerSecond = 1.0 / elapsed
		}
		if a.ticks%60 == 0 {
			sixtyTicksAverage := a.FPSRunningAvg
			a.Window.SetTitle(fmt.Sprintf("FPS: %.0f (Avg: %.0f, Min: %.0f, Max: %.0f) / Elapsed: %.3f", a.FramesPerSecond, sixtyTicksAverage, a.FPSMin, a.FPSMax, elapsed*1000))
			a.FPSRunningAvg = 0 + a.FramesPerSecond*(1.0/60.0)
			a.FPSMin = math.MaxFloat64
			a.FPSMax = 0
		} else {
			a.FPSRunningAvg = a.FPSRunningAvg + a.FramesPerSecond*(1.0/60.0)
			if a.FramesPerSecond < a.FPSMin {
				a.FPSMin = a.FramesPerSecond
			}
			if a.FramesPerSecond > a.FPSMax {
				a.FPSMax = a.FramesPerSecond
			}
		}

		a.Window.SwapBuffers()
		glfw.PollEvents()
		a.ticks++
	}
}

// InitOpenGL opens a window with a 3.3 core context, makes it current and
// initializes glhf. The returned function terminates glhf and glfw.
func InitOpenGL(title string, width, height int) (*glfw.Window, func(), error) {
	if err := glfw.Init(); err != nil {
		return nil, nil, errors.Wrap(err, "glfw init")
	}
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	win, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, nil, errors.Wrap(err, "create window")
	}
	win.MakeContextCurrent()
	glfw.SwapInterval(1) // enable (1) vsync

	if err := glhf.Init(); err != nil {
		win.Destroy()
		glfw.Terminate()
		return nil, nil, err
	}

	version := gl.GoStr(gl.GetString(gl.VERSION))
	LogGlInfo(fmt.Sprintf("OpenGL version %s", version))

	fbWidth, fbHeight := win.GetFramebufferSize()
	glhf.Bounds(0, 0, fbWidth, fbHeight)

	return win, func() {
		glhf.Terminate()
		glfw.Terminate()
	}, nil
}
