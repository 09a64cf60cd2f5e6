package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/tuannm99/novapool/internal/alias/util"
)

type FileSet interface {
	OpenSegment(segNo int32) (*os.File, error)
}

var _ FileSet = (*LocalFileSet)(nil)

// LocalFileSet represents a local directory + base file name.
// Segments are stored as: Base, Base.1, Base.2, ...
type LocalFileSet struct {
	Dir  string
	Base string
}

func (lfs LocalFileSet) OpenSegment(segNo int32) (*os.File, error) {
	path := filepath.Join(lfs.Dir, SegFileName(lfs.Base, segNo))
	if err := os.MkdirAll(lfs.Dir, FileMode0755); err != nil {
		return nil, err
	}
	// RDWR | CREATE (no truncate)
	return os.OpenFile(path, os.O_RDWR|os.O_CREATE, FileMode0644)
}

// Key is a stable identity for the file set, used as the page file name.
func (lfs LocalFileSet) Key() string {
	return filepath.Join(filepath.Clean(lfs.Dir), lfs.Base)
}

// StorageManager maps a logical pageID -> (segment, offset).
type StorageManager struct{}

func NewStorageManager() *StorageManager {
	return &StorageManager{}
}

func (sm *StorageManager) locate(pageID PageID) (segNo int32, offset int64) {
	segNo = int32(pageID / MaxPagePerSegment)
	pageInSeg := int64(pageID % MaxPagePerSegment)
	return segNo, pageInSeg * PageSize
}

// ReadPage reads exactly one page (PageSize bytes) into dst.
// If the underlying file is smaller than the requested offset+PageSize,
// the remainder is zero-filled.
func (sm *StorageManager) ReadPage(fs FileSet, pageID PageID, dst []byte) error {
	if len(dst) != PageSize {
		return fmt.Errorf("dst must be exactly %d bytes: %w", PageSize, ErrWrongSize)
	}
	segNo, off := sm.locate(pageID)
	f, err := fs.OpenSegment(segNo)
	if err != nil {
		return err
	}
	defer util.CloseFileFunc(f)

	n, err := f.ReadAt(dst, off)
	if err != nil && !util.IsEOF(err) {
		return err
	}
	// Zero-fill the rest of the page if we hit EOF early or a short read.
	clear(dst[n:])
	return nil
}

// WritePage writes exactly one page (PageSize bytes) from src to disk
// at the location computed from pageID.
func (sm *StorageManager) WritePage(fs FileSet, pageID PageID, src []byte) error {
	if len(src) != PageSize {
		return fmt.Errorf("src must be exactly %d bytes: %w", PageSize, ErrWrongSize)
	}
	segNo, off := sm.locate(pageID)
	f, err := fs.OpenSegment(segNo)
	if err != nil {
		return err
	}
	defer util.CloseFileFunc(f)

	n, err := f.WriteAt(src, off)
	if err != nil {
		return err
	}
	if n != PageSize {
		return io.ErrShortWrite
	}
	return nil
}
