//go:build !nogpu

package upload

import (
	"errors"
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/drawpack"
)

var (
	// ErrEmptyFrame is returned when a frame has no geometry to upload.
	ErrEmptyFrame = errors.New("upload: empty frame")
	// ErrUpload wraps buffer creation failures.
	ErrUpload = errors.New("upload: buffer creation failed")
	// ErrNoHAL is returned when a device provider does not expose HAL
	// device and queue.
	ErrNoHAL = errors.New("upload: provider does not expose HAL types")
)

// Writer owns the GPU buffers of the most recently uploaded frame.
//
// A Writer is not safe for concurrent use.
type Writer struct {
	device hal.Device
	queue  hal.Queue

	vertex hal.Buffer
	index  hal.Buffer
	data   hal.Buffer
}

// NewWriter creates a Writer on device and queue.
func NewWriter(device hal.Device, queue hal.Queue) *Writer {
	return &Writer{device: device, queue: queue}
}

// NewWriterFromProvider creates a Writer on the device shared by a host
// application. The provider must also implement HalDevice() any and
// HalQueue() any returning hal.Device and hal.Queue.
func NewWriterFromProvider(provider gpucontext.DeviceProvider) (*Writer, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, ErrNoHAL
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("%w: HalDevice is not hal.Device", ErrNoHAL)
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("%w: HalQueue is not hal.Queue", ErrNoHAL)
	}
	return NewWriter(device, queue), nil
}

// Upload replaces the writer's buffers with new ones holding f. The data
// buffer is nil when the frame has no data.
func (w *Writer) Upload(f *Frame) error {
	if len(f.Vertices) == 0 || len(f.Indices) == 0 {
		return ErrEmptyFrame
	}
	w.Release()

	var err error
	if w.vertex, err = w.createAndUpload("drawpack_vertices", f.VertexBytes(),
		gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst); err != nil {
		return err
	}
	if w.index, err = w.createAndUpload("drawpack_indices", f.IndexBytes(),
		gputypes.BufferUsageIndex|gputypes.BufferUsageCopyDst); err != nil {
		w.Release()
		return err
	}
	if len(f.Data) == 0 && len(f.Calls) > 0 {
		drawpack.Logger().Warn("upload: draw calls without data store",
			"calls", len(f.Calls))
	}
	if len(f.Data) > 0 {
		if w.data, err = w.createAndUpload("drawpack_data", f.DataBytes(),
			gputypes.BufferUsageStorage|gputypes.BufferUsageCopyDst); err != nil {
			w.Release()
			return err
		}
	}

	drawpack.Logger().Info("upload: frame uploaded",
		"vertices", len(f.Vertices),
		"indices", len(f.Indices),
		"dataWords", len(f.Data),
		"calls", len(f.Calls))
	return nil
}

func (w *Writer) createAndUpload(label string, data []byte, usage gputypes.BufferUsage) (hal.Buffer, error) {
	buf, err := w.device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  uint64(len(data)),
		Usage: usage,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrUpload, label, err)
	}
	w.queue.WriteBuffer(buf, 0, data)
	drawpack.Logger().Debug("upload: buffer created", "label", label, "size", len(data))
	return buf, nil
}

// VertexBuffer returns the vertex buffer, laid out as vertex.BufferLayout.
func (w *Writer) VertexBuffer() hal.Buffer { return w.vertex }

// IndexBuffer returns the uint32 index buffer.
func (w *Writer) IndexBuffer() hal.Buffer { return w.index }

// DataBuffer returns the storage buffer holding the data store.
func (w *Writer) DataBuffer() hal.Buffer { return w.data }

// Release destroys the writer's buffers. It is safe to call repeatedly.
func (w *Writer) Release() {
	for _, b := range []*hal.Buffer{&w.vertex, &w.index, &w.data} {
		if *b != nil {
			w.device.DestroyBuffer(*b)
			*b = nil
		}
	}
}
