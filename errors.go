package lchart

import (
	"errors"
	"fmt"
)

var (
	// ErrBufferAllocation is wrapped by errors from buffer creation.
	ErrBufferAllocation = errors.New("lchart: buffer allocation failed")

	// ErrSurfaceUnavailable is wrapped when the host surface cannot be queried.
	ErrSurfaceUnavailable = errors.New("lchart: surface unavailable")

	// ErrClosed is returned by a chart or renderer after Close/Delete.
	ErrClosed = errors.New("lchart: closed")

	// ErrNoSampler is returned when a plot is requested without a sampler.
	ErrNoSampler = errors.New("lchart: no sampler")
)

// ShaderCompileError reports a shader the driver rejected.
type ShaderCompileError struct {
	Kind ShaderKind
	Log  string
}

func (e *ShaderCompileError) Error() string {
	return fmt.Sprintf("%s shader compilation failed: %s", e.Kind, e.Log)
}

// LinkError reports a program that failed to link.
type LinkError struct {
	Log string
}

func (e *LinkError) Error() string {
	return "shader program linking failed: " + e.Log
}

// UniformLookupError reports a uniform the linked program does not expose.
type UniformLookupError struct {
	Name string
}

func (e *UniformLookupError) Error() string {
	return fmt.Sprintf("uniform %q not found", e.Name)
}

// AttributeLookupError reports a vertex attribute the linked program does not expose.
type AttributeLookupError struct {
	Name string
}

func (e *AttributeLookupError) Error() string {
	return fmt.Sprintf("attribute %q not found", e.Name)
}

// DegenerateRangeError reports a zero-width (or non-finite) axis range.
type DegenerateRangeError struct {
	Axis     string
	From, To float32
}

func (e *DegenerateRangeError) Error() string {
	return fmt.Sprintf("degenerate %s range [%g, %g]", e.Axis, e.From, e.To)
}

// InvalidSampleCountError reports a point count outside [2, MaxPoints].
type InvalidSampleCountError struct {
	Count int
}

func (e *InvalidSampleCountError) Error() string {
	return fmt.Sprintf("invalid sample count %d: need between 2 and %d", e.Count, MaxPoints)
}

// IndexRangeError reports an index that does not reference a point.
type IndexRangeError struct {
	Position int
	Index    uint16
	Points   int
}

func (e *IndexRangeError) Error() string {
	return fmt.Sprintf("index %d at position %d out of range for %d points", e.Index, e.Position, e.Points)
}
