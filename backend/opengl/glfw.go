package opengl

import (
	"fmt"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/go-theft-auto/lchart"
)

// GLFWSurface adapts a GLFW window to Surface using its framebuffer size,
// which differs from the window size on high-DPI displays.
func GLFWSurface(window *glfw.Window) Surface {
	return SurfaceFunc(func() (int, int, error) {
		if window == nil {
			return 0, 0, fmt.Errorf("%w: nil window", lchart.ErrSurfaceUnavailable)
		}
		if window.ShouldClose() {
			return 0, 0, fmt.Errorf("%w: window closing", lchart.ErrSurfaceUnavailable)
		}
		w, h := window.GetFramebufferSize()
		if w <= 0 || h <= 0 {
			return 0, 0, fmt.Errorf("%w: empty framebuffer %dx%d", lchart.ErrSurfaceUnavailable, w, h)
		}
		return w, h, nil
	})
}

// WindowConfig describes the window OpenWindow creates.
type WindowConfig struct {
	Width, Height int
	Title         string
	Visible       bool
}

// OpenWindow initializes GLFW, creates a window with an OpenGL 2.1 context,
// makes it current and loads GL function pointers. The returned func
// destroys the window and terminates GLFW.
// Must be called from the main thread (runtime.LockOSThread in init).
func OpenWindow(cfg WindowConfig) (*glfw.Window, func(), error) {
	if err := glfw.Init(); err != nil {
		return nil, nil, fmt.Errorf("glfw init: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 2)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	if !cfg.Visible {
		glfw.WindowHint(glfw.Visible, glfw.False)
	}

	window, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, nil, fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()

	if err := initGL(); err != nil {
		window.Destroy()
		glfw.Terminate()
		return nil, nil, fmt.Errorf("gl init: %w", err)
	}

	return window, func() {
		window.Destroy()
		glfw.Terminate()
	}, nil
}
