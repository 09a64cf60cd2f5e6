package storage

import (
	"encoding/binary"
	"fmt"
	"log/slog"
	"math"
)

// File is a page-addressed backing store. The buffer pool keys its directory
// by Name, so two open Files must never share a name.
type File interface {
	Name() string
	ReadPage(id PageID) (*Page, error)
	WritePage(p *Page) error
	AllocatePage() (*Page, error)
	DeletePage(id PageID) error
}

var (
	_ File = (*DiskFile)(nil)
	_ File = (*MemFile)(nil)
)

// header page (page 0) payload offsets
const (
	hdrMagic    = 0
	hdrNumPages = 4
	hdrFreeHead = 8

	fileMagic uint32 = 0x4e565046 // "NVPF"
)

// DiskFile is a segmented on-disk page file. Page 0 holds the header
// (magic, page count, free-list head); deleted pages are chained through
// their nextFree field and reused by AllocatePage.
type DiskFile struct {
	sm  *StorageManager
	lfs LocalFileSet

	numPages PageID // next id to append, header included
	freeHead PageID
	free     map[PageID]struct{}
	closed   bool
}

// OpenDiskFile opens the page file described by lfs, creating it when no
// segment exists yet.
func OpenDiskFile(sm *StorageManager, lfs LocalFileSet) (*DiskFile, error) {
	if sm == nil {
		sm = NewStorageManager()
	}
	f := &DiskFile{sm: sm, lfs: lfs, free: make(map[PageID]struct{})}

	exists, err := SegmentsExist(lfs)
	if err != nil {
		return nil, fmt.Errorf("open page file %s: %w", lfs.Key(), err)
	}
	if !exists {
		f.numPages = 1
		f.freeHead = InvalidPageID
		if err := f.writeHeader(); err != nil {
			return nil, fmt.Errorf("create page file %s: %w", lfs.Key(), err)
		}
		slog.Debug("storage: created page file", "file", lfs.Key())
		return f, nil
	}

	if err := f.readHeader(); err != nil {
		return nil, fmt.Errorf("open page file %s: %w", lfs.Key(), err)
	}
	if err := f.loadFreeList(); err != nil {
		return nil, fmt.Errorf("open page file %s: %w", lfs.Key(), err)
	}
	slog.Debug("storage: opened page file",
		"file", lfs.Key(),
		"numPages", f.numPages,
		"freePages", len(f.free),
	)
	return f, nil
}

func (f *DiskFile) Name() string { return f.lfs.Key() }

// PageCount returns the number of data pages ever appended, free ones included.
func (f *DiskFile) PageCount() int { return int(f.numPages) - 1 }

func (f *DiskFile) readHeader() error {
	buf := make([]byte, PageSize)
	if err := f.sm.ReadPage(f.lfs, 0, buf); err != nil {
		return err
	}
	d := buf[HeaderSize:]
	if binary.LittleEndian.Uint32(d[hdrMagic:]) != fileMagic {
		return ErrNotPageFile
	}
	f.numPages = PageID(binary.LittleEndian.Uint32(d[hdrNumPages:]))
	f.freeHead = PageID(binary.LittleEndian.Uint32(d[hdrFreeHead:]))
	if f.numPages == 0 {
		return ErrNotPageFile
	}
	return nil
}

// loadFreeList walks the on-disk free chain into f.free.
func (f *DiskFile) loadFreeList() error {
	for id := f.freeHead; id != InvalidPageID; {
		if id >= f.numPages {
			return fmt.Errorf("free page %d beyond end: %w", id, ErrNotPageFile)
		}
		if _, seen := f.free[id]; seen {
			return fmt.Errorf("free list cycle at page %d: %w", id, ErrNotPageFile)
		}
		p, err := f.readRaw(id)
		if err != nil {
			return err
		}
		if !p.IsFree() {
			return fmt.Errorf("free list entry %d is in use: %w", id, ErrNotPageFile)
		}
		f.free[id] = struct{}{}
		id = p.nextFree()
	}
	return nil
}

func (f *DiskFile) writeHeader() error {
	p, err := NewPage(make([]byte, PageSize), 0)
	if err != nil {
		return err
	}
	d := p.Data()
	binary.LittleEndian.PutUint32(d[hdrMagic:], fileMagic)
	binary.LittleEndian.PutUint32(d[hdrNumPages:], uint32(f.numPages))
	binary.LittleEndian.PutUint32(d[hdrFreeHead:], uint32(f.freeHead))
	return f.sm.WritePage(f.lfs, 0, p.Buf)
}

func (f *DiskFile) checkID(id PageID) error {
	if f.closed {
		return ErrFileClosed
	}
	if id == InvalidPageID || id >= f.numPages {
		return fmt.Errorf("page %d of %s: %w", id, f.Name(), ErrPageNotFound)
	}
	if _, ok := f.free[id]; ok {
		return fmt.Errorf("page %d of %s is free: %w", id, f.Name(), ErrPageNotFound)
	}
	return nil
}

// readRaw reads page id regardless of its free flag.
func (f *DiskFile) readRaw(id PageID) (*Page, error) {
	buf := make([]byte, PageSize)
	if err := f.sm.ReadPage(f.lfs, id, buf); err != nil {
		return nil, err
	}
	return &Page{Buf: buf}, nil
}

// ReadPage returns a detached copy of page id. Free pages are not readable.
func (f *DiskFile) ReadPage(id PageID) (*Page, error) {
	if err := f.checkID(id); err != nil {
		return nil, err
	}
	return f.readRaw(id)
}

// WritePage persists p at the id stamped in its header.
func (f *DiskFile) WritePage(p *Page) error {
	if len(p.Buf) != PageSize {
		return ErrWrongSize
	}
	id := p.PageID()
	if err := f.checkID(id); err != nil {
		return err
	}
	if p.IsFree() {
		return fmt.Errorf("write free-flagged page %d of %s: %w", id, f.Name(), ErrPageNotFound)
	}
	return f.sm.WritePage(f.lfs, id, p.Buf)
}

// AllocatePage hands out the head of the free list, or appends a new page.
// The returned page is zeroed and already persisted.
func (f *DiskFile) AllocatePage() (*Page, error) {
	if f.closed {
		return nil, ErrFileClosed
	}

	var id PageID
	next := f.freeHead
	numPages := f.numPages
	if f.freeHead != InvalidPageID {
		free, err := f.readRaw(f.freeHead)
		if err != nil {
			return nil, err
		}
		if !free.IsFree() {
			return nil, fmt.Errorf("free-list head %d of %s is in use: %w", f.freeHead, f.Name(), ErrNotPageFile)
		}
		id = f.freeHead
		next = free.nextFree()
	} else {
		if f.numPages == math.MaxUint32 {
			return nil, ErrFileFull
		}
		id = f.numPages
		numPages++
	}

	p, err := NewPage(make([]byte, PageSize), id)
	if err != nil {
		return nil, err
	}
	if err := f.sm.WritePage(f.lfs, id, p.Buf); err != nil {
		return nil, err
	}

	f.freeHead, f.numPages = next, numPages
	delete(f.free, id)
	if err := f.writeHeader(); err != nil {
		return nil, err
	}
	return p, nil
}

// DeletePage links page id into the free list.
func (f *DiskFile) DeletePage(id PageID) error {
	p, err := f.ReadPage(id)
	if err != nil {
		return err
	}
	p.markFree(f.freeHead)
	if err := f.sm.WritePage(f.lfs, id, p.Buf); err != nil {
		return err
	}
	f.freeHead = id
	f.free[id] = struct{}{}
	return f.writeHeader()
}

// Close persists the header. Further calls fail with ErrFileClosed.
func (f *DiskFile) Close() error {
	if f.closed {
		return nil
	}
	if err := f.writeHeader(); err != nil {
		return err
	}
	f.closed = true
	return nil
}

// Remove closes the file and deletes all of its segments.
func (f *DiskFile) Remove() error {
	f.closed = true
	return RemoveAllSegments(f.lfs)
}
