package bind_group_provider

import "github.com/cogentcore/webgpu/wgpu"

// BufferWrite is a pending queue write of Data into one binding of a provider, starting
// Offset bytes into the buffer.
type BufferWrite struct {
	Provider BindGroupProvider
	Binding  int
	Offset   uint64
	Data     []byte
}

// Target resolves the buffer the write lands in. It is nil when the write has no provider,
// no data, or the binding has not been allocated yet.
func (w BufferWrite) Target() *wgpu.Buffer {
	if w.Provider == nil || len(w.Data) == 0 {
		return nil
	}
	return w.Provider.Buffer(w.Binding)
}
