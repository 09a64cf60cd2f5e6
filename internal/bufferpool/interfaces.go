package bufferpool

import (
	"io"

	"github.com/tuannm99/novapool/internal/storage"
)

// BufferManager is the surface handed to page consumers (scans, joins).
type BufferManager interface {
	Fetch(file storage.File, pageID storage.PageID) (*PageHandle, error)
	Release(file storage.File, pageID storage.PageID, dirty bool) error
	Allocate(file storage.File) (storage.PageID, *PageHandle, error)
	Dispose(file storage.File, pageID storage.PageID) error
	Flush(file storage.File) error
	FlushAll() error
	Dump(w io.Writer) (int, error)
}

// Pager is a BufferManager bound to a single file.
type Pager interface {
	Fetch(pageID storage.PageID) (*PageHandle, error)
	Release(pageID storage.PageID, dirty bool) error
	Allocate() (storage.PageID, *PageHandle, error)
	Dispose(pageID storage.PageID) error
	Flush() error
}
