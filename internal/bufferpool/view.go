package bufferpool

import "github.com/tuannm99/novapool/internal/storage"

var _ Pager = (*FileView)(nil)

// FileView binds a BufferManager to a specific file.
// It implements Pager so consumers can page through one file without
// carrying the file around.
type FileView struct {
	bm   BufferManager
	file storage.File
}

// NewFileView returns a Pager for file backed by bm.
func NewFileView(bm BufferManager, file storage.File) *FileView {
	return &FileView{bm: bm, file: file}
}

func (v *FileView) File() storage.File { return v.file }

func (v *FileView) Fetch(pageID storage.PageID) (*PageHandle, error) {
	return v.bm.Fetch(v.file, pageID)
}

func (v *FileView) Release(pageID storage.PageID, dirty bool) error {
	return v.bm.Release(v.file, pageID, dirty)
}

func (v *FileView) Allocate() (storage.PageID, *PageHandle, error) {
	return v.bm.Allocate(v.file)
}

func (v *FileView) Dispose(pageID storage.PageID) error {
	return v.bm.Dispose(v.file, pageID)
}

// Flush writes back and evicts the pages of THIS file only.
func (v *FileView) Flush() error {
	return v.bm.Flush(v.file)
}

// View returns a file-scoped Pager backed by m.
func (m *Manager) View(file storage.File) *FileView {
	return NewFileView(m, file)
}
