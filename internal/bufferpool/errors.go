package bufferpool

import (
	"errors"
	"fmt"

	"github.com/tuannm99/novapool/internal/storage"
)

var (
	DefaultCapacity = 128

	ErrPoolExhausted  = errors.New("bufferpool: no free frame available (all pinned)")
	ErrPageNotPinned  = errors.New("bufferpool: page is not pinned")
	ErrPagePinned     = errors.New("bufferpool: page is pinned")
	ErrBadBufferState = errors.New("bufferpool: frame table and page directory disagree")
	ErrPoolClosed     = errors.New("bufferpool: pool is closed")
)

// BadBufferError reports a frame whose metadata contradicts the directory.
// It matches ErrBadBufferState.
type BadBufferError struct {
	FrameID int
	File    string
	PageID  storage.PageID
	Valid   bool
	Dirty   bool
	RefBit  bool
}

func (e *BadBufferError) Error() string {
	return fmt.Sprintf("%v: frame %d (file=%q page=%d valid=%v dirty=%v refbit=%v)",
		ErrBadBufferState, e.FrameID, e.File, e.PageID, e.Valid, e.Dirty, e.RefBit)
}

func (e *BadBufferError) Is(target error) bool {
	return target == ErrBadBufferState
}

func badBuffer(d *FrameDescriptor, file string) *BadBufferError {
	return &BadBufferError{
		FrameID: d.FrameID,
		File:    file,
		PageID:  d.PageID,
		Valid:   d.Valid,
		Dirty:   d.Dirty,
		RefBit:  d.RefBit,
	}
}
