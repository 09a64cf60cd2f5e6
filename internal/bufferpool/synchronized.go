package bufferpool

import (
	"io"
	"sync"

	"github.com/tuannm99/novapool/internal/storage"
)

var _ BufferManager = (*Synchronized)(nil)

// Synchronized serializes every call into a Manager with one mutex.
// Handles it returns release through the same lock.
type Synchronized struct {
	mu sync.Mutex
	m  *Manager
}

func NewSynchronized(m *Manager) *Synchronized {
	return &Synchronized{m: m}
}

func (s *Synchronized) Fetch(file storage.File, pageID storage.PageID) (*PageHandle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	h, err := s.m.Fetch(file, pageID)
	if h != nil {
		h.owner = s
	}
	return h, err
}

func (s *Synchronized) Release(file storage.File, pageID storage.PageID, dirty bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m.Release(file, pageID, dirty)
}

func (s *Synchronized) Allocate(file storage.File) (storage.PageID, *PageHandle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, h, err := s.m.Allocate(file)
	if h != nil {
		h.owner = s
	}
	return id, h, err
}

func (s *Synchronized) Dispose(file storage.File, pageID storage.PageID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m.Dispose(file, pageID)
}

func (s *Synchronized) Flush(file storage.File) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m.Flush(file)
}

func (s *Synchronized) FlushAll() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m.FlushAll()
}

func (s *Synchronized) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m.Close()
}

func (s *Synchronized) Dump(w io.Writer) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m.Dump(w)
}

// View returns a file-scoped Pager whose calls go through the lock.
func (s *Synchronized) View(file storage.File) *FileView {
	return NewFileView(s, file)
}
