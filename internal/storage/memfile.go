package storage

import (
	"fmt"
	"math"
)

// MemStats counts the calls a MemFile has served.
type MemStats struct {
	Reads   int
	Writes  int
	Allocs  int
	Deletes int
}

// MemFile is an in-memory File with the same contract as DiskFile.
// Pages are stored as detached copies, so callers never alias its storage.
type MemFile struct {
	name  string
	pages map[PageID][]byte
	free  []PageID
	next  PageID
	stats MemStats
}

func NewMemFile(name string) *MemFile {
	return &MemFile{
		name:  name,
		pages: make(map[PageID][]byte),
		next:  1,
	}
}

func (m *MemFile) Name() string { return m.name }

func (m *MemFile) Stats() MemStats { return m.stats }

// PageCount returns the number of live pages.
func (m *MemFile) PageCount() int { return len(m.pages) }

func (m *MemFile) ReadPage(id PageID) (*Page, error) {
	m.stats.Reads++
	buf, ok := m.pages[id]
	if !ok {
		return nil, fmt.Errorf("page %d of %s: %w", id, m.name, ErrPageNotFound)
	}
	p := &Page{Buf: make([]byte, PageSize)}
	copy(p.Buf, buf)
	return p, nil
}

func (m *MemFile) WritePage(p *Page) error {
	if len(p.Buf) != PageSize {
		return ErrWrongSize
	}
	m.stats.Writes++
	buf, ok := m.pages[p.PageID()]
	if !ok {
		return fmt.Errorf("page %d of %s: %w", p.PageID(), m.name, ErrPageNotFound)
	}
	copy(buf, p.Buf)
	return nil
}

func (m *MemFile) AllocatePage() (*Page, error) {
	var id PageID
	if n := len(m.free); n > 0 {
		id = m.free[n-1]
		m.free = m.free[:n-1]
	} else {
		if m.next == math.MaxUint32 {
			return nil, ErrFileFull
		}
		id = m.next
		m.next++
	}

	p, err := NewPage(make([]byte, PageSize), id)
	if err != nil {
		return nil, err
	}
	m.pages[id] = p.Clone().Buf
	m.stats.Allocs++
	return p, nil
}

func (m *MemFile) DeletePage(id PageID) error {
	if _, ok := m.pages[id]; !ok {
		return fmt.Errorf("page %d of %s: %w", id, m.name, ErrPageNotFound)
	}
	delete(m.pages, id)
	m.free = append(m.free, id)
	m.stats.Deletes++
	return nil
}
