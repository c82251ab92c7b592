package bind_group_provider

import (
	"errors"
	"fmt"
)

var (
	// ErrNoBuffer is returned when a write targets a binding without a buffer.
	ErrNoBuffer = errors.New("no buffer at binding")

	// ErrWriteOutOfRange is returned when a write does not fit in the target buffer.
	ErrWriteOutOfRange = errors.New("buffer write out of range")
)

// BufferWrite describes a single GPU buffer write operation targeting a specific binding
// on a BindGroupProvider at a given byte offset.
type BufferWrite struct {
	Provider BindGroupProvider
	Binding  int
	Offset   uint64
	Data     []byte
}

// Check verifies that the write targets an existing buffer and fits inside it.
//
// Returns:
//   - error: ErrNoBuffer or ErrWriteOutOfRange, nil if the write can be queued
func (w BufferWrite) Check() error {
	if w.Provider == nil || w.Provider.Buffer(w.Binding) == nil {
		return fmt.Errorf("binding %d: %w", w.Binding, ErrNoBuffer)
	}
	size := w.Provider.BufferSize(w.Binding)
	if w.Offset+uint64(len(w.Data)) > size {
		return fmt.Errorf("%s binding %d: %d bytes at offset %d into %d: %w",
			w.Provider.Label(), w.Binding, len(w.Data), w.Offset, size, ErrWriteOutOfRange)
	}
	return nil
}
