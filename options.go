package lchart

import "log/slog"

// Option configures a Chart or Renderer.
type Option func(*config)

// config holds construction-time settings.
type config struct {
	vertexSource   string
	fragmentSource string
	clearColor     uint32
	usage          BufferUsage
	logger         *slog.Logger
}

// WithShaderSources replaces the built-in vertex and fragment shaders.
// The vertex shader must declare attribute "a_position" and uniform "u_matrix".
func WithShaderSources(vertex, fragment string) Option {
	return func(c *config) {
		c.vertexSource = vertex
		c.fragmentSource = fragment
	}
}

// WithClearColor sets the background color (packed RGBA, see RGBA).
func WithClearColor(color uint32) Option {
	return func(c *config) { c.clearColor = color }
}

// WithBufferUsage sets the usage hint passed with every upload. The
// renderer re-uploads on each draw; DynamicDraw suits hosts that redraw
// every frame.
func WithBufferUsage(usage BufferUsage) Option {
	return func(c *config) { c.usage = usage }
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// applyOptions applies all options over the defaults.
func applyOptions(opts []Option) config {
	c := config{
		vertexSource:   VertexShaderSource,
		fragmentSource: FragmentShaderSource,
		clearColor:     ColorRed,
		usage:          StaticDraw,
		logger:         chartLogger,
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}
