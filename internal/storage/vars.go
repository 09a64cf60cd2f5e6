package storage

import (
	"errors"
)

const (
	OneB  = 1 << 0  // 1
	OneKB = 1 << 10 // 1,024
	OneMB = 1 << 20 // 1,048,576
	OneGB = 1 << 30 // 1,073,741,824

	SegmentSize       = 1 << 30                // 1,073,741,824 (1 GiB)
	PageSize          = 1 << 13                // 8,192 (8 KiB)
	MaxPagePerSegment = SegmentSize / PageSize // 131,072 pages/segment
	HeaderSize        = 10                     // flags(2) + pageID(4) + nextFree(4)
	DataSize          = PageSize - HeaderSize
)

const (
	FileMode0644 = 0o644
	FileMode0664 = 0o664
	FileMode0755 = 0o755
)

// PageID identifies a page inside one File. Page 0 of a DiskFile is its header.
type PageID uint32

// InvalidPageID is never handed out to callers; it terminates the free list.
const InvalidPageID PageID = 0

var (
	ErrPageNotFound = errors.New("storage: page not found")
	ErrWrongSize    = errors.New("storage: buffer size != PageSize")
	ErrNotPageFile  = errors.New("storage: not a page file (bad header magic)")
	ErrFileClosed   = errors.New("storage: file is closed")
	ErrFileFull     = errors.New("storage: page id space exhausted")
)
