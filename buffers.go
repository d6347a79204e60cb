package lchart

import (
	"encoding/binary"
	"fmt"
)

// geometryBuffers are the two GPU buffers the renderer owns.
type geometryBuffers struct {
	vertex Buffer
	index  Buffer
}

// createBuffers allocates an empty vertex and index buffer.
func createBuffers(g Graphics) (geometryBuffers, error) {
	vertex, err := g.CreateBuffer()
	if err != nil {
		return geometryBuffers{}, fmt.Errorf("%w: vertex buffer: %v", ErrBufferAllocation, err)
	}

	index, err := g.CreateBuffer()
	if err != nil {
		g.DeleteBuffer(vertex)
		return geometryBuffers{}, fmt.Errorf("%w: index buffer: %v", ErrBufferAllocation, err)
	}

	return geometryBuffers{vertex: vertex, index: index}, nil
}

// uploadVertices replaces the vertex buffer with tightly packed x,y float32 pairs.
// The buffer stays bound to ArrayBuffer afterwards.
func uploadVertices(g Graphics, buf Buffer, points []Vec2, usage BufferUsage) error {
	data, err := binary.Append(make([]byte, 0, len(points)*8), binary.LittleEndian, points)
	if err != nil {
		return fmt.Errorf("encode vertices: %w", err)
	}
	g.BindBuffer(ArrayBuffer, buf)
	g.BufferData(ArrayBuffer, data, usage)
	return nil
}

// uploadIndices replaces the index buffer with uint16 indices.
// The buffer stays bound to ElementArrayBuffer afterwards.
func uploadIndices(g Graphics, buf Buffer, indices []uint16, usage BufferUsage) error {
	data, err := binary.Append(make([]byte, 0, len(indices)*2), binary.LittleEndian, indices)
	if err != nil {
		return fmt.Errorf("encode indices: %w", err)
	}
	g.BindBuffer(ElementArrayBuffer, buf)
	g.BufferData(ElementArrayBuffer, data, usage)
	return nil
}

// delete releases both buffers.
func (b geometryBuffers) delete(g Graphics) {
	if b.index != 0 {
		g.DeleteBuffer(b.index)
	}
	if b.vertex != 0 {
		g.DeleteBuffer(b.vertex)
	}
}
