package bufferpool

import (
	"fmt"
	"log/slog"

	"github.com/tuannm99/novapool/internal/storage"
)

var _ BufferManager = (*Manager)(nil)

// Manager caches pages of storage.Files in a fixed set of frames.
//
// A Manager is not safe for concurrent use; wrap it with NewSynchronized when
// several goroutines share it. Every successful Fetch or Allocate pins the
// page once and must be matched by exactly one Release.
type Manager struct {
	frames *frameTable
	dir    *PageDirectory
	repl   *ClockReplacer
	log    *slog.Logger
	closed bool
}

// NewManager creates a pool of capacity frames. capacity <= 0 uses
// DefaultCapacity and a nil logger uses slog.Default().
func NewManager(capacity int, logger *slog.Logger) *Manager {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if logger == nil {
		logger = slog.Default()
	}
	frames := newFrameTable(capacity)
	dir := NewPageDirectory(capacity)
	return &Manager{
		frames: frames,
		dir:    dir,
		repl:   newClockReplacer(frames, dir, logger),
		log:    logger,
	}
}

func (m *Manager) Capacity() int { return m.frames.Len() }

// ValidFrames returns the number of frames currently holding a page.
func (m *Manager) ValidFrames() int {
	n := 0
	for i := range m.frames.descs {
		if m.frames.descs[i].Valid {
			n++
		}
	}
	return n
}

func (m *Manager) handle(idx int, file storage.File, pageID storage.PageID) *PageHandle {
	return &PageHandle{owner: m, pages: m.frames, frame: idx, file: file, pageID: pageID}
}

// Fetch pins page pageID of file and returns a handle on its frame.
// A resident page is served without touching the file.
func (m *Manager) Fetch(file storage.File, pageID storage.PageID) (*PageHandle, error) {
	if m.closed {
		return nil, ErrPoolClosed
	}
	name := file.Name()

	// 1) HIT
	if idx, ok := m.dir.Lookup(name, pageID); ok {
		d := &m.frames.descs[idx]
		d.RefBit = true
		d.PinCount++
		return m.handle(idx, file, pageID), nil
	}

	// 2) MISS
	idx, err := m.repl.SelectVictim()
	if err != nil {
		return nil, fmt.Errorf("fetch page %d of %s: %w", pageID, name, err)
	}

	page, err := file.ReadPage(pageID)
	if err != nil {
		// the frame stays empty
		return nil, fmt.Errorf("fetch page %d of %s: %w", pageID, name, err)
	}
	m.frames.load(idx, page)

	if err := m.dir.Insert(name, pageID, idx); err != nil {
		return nil, err
	}
	m.frames.descs[idx].Set(file, pageID)
	return m.handle(idx, file, pageID), nil
}

// Release drops one pin of (file,pageID) and marks it dirty if asked.
// Releasing a page that is not resident is a no-op.
func (m *Manager) Release(file storage.File, pageID storage.PageID, dirty bool) error {
	idx, ok := m.dir.Lookup(file.Name(), pageID)
	if !ok {
		return nil
	}

	d := &m.frames.descs[idx]
	if d.PinCount == 0 {
		return fmt.Errorf("release page %d of %s (frame %d): %w", pageID, file.Name(), idx, ErrPageNotPinned)
	}
	d.PinCount--
	if dirty {
		d.Dirty = true
	}
	return nil
}

// Allocate creates a new page in file and returns it pinned.
func (m *Manager) Allocate(file storage.File) (storage.PageID, *PageHandle, error) {
	if m.closed {
		return storage.InvalidPageID, nil, ErrPoolClosed
	}
	name := file.Name()

	// Take the frame first so an exhausted pool does not leave an orphan page in file.
	idx, err := m.repl.SelectVictim()
	if err != nil {
		return storage.InvalidPageID, nil, fmt.Errorf("allocate page in %s: %w", name, err)
	}

	page, err := file.AllocatePage()
	if err != nil {
		return storage.InvalidPageID, nil, fmt.Errorf("allocate page in %s: %w", name, err)
	}
	pageID := page.PageID()
	m.frames.load(idx, page)

	if err := m.dir.Insert(name, pageID, idx); err != nil {
		return storage.InvalidPageID, nil, err
	}
	m.frames.descs[idx].Set(file, pageID)
	return pageID, m.handle(idx, file, pageID), nil
}

// Dispose drops (file,pageID) from the pool if cached, then deletes it from file.
func (m *Manager) Dispose(file storage.File, pageID storage.PageID) error {
	name := file.Name()
	if idx, ok := m.dir.Lookup(name, pageID); ok {
		d := &m.frames.descs[idx]
		if d.PinCount > 0 {
			m.log.Warn("bufferpool: disposing pinned page",
				"file", name,
				"pageID", pageID,
				"pins", d.PinCount,
			)
		}
		d.Clear()
		m.dir.Remove(name, pageID)
	}

	if err := file.DeletePage(pageID); err != nil {
		return fmt.Errorf("dispose page %d of %s: %w", pageID, name, err)
	}
	return nil
}

// Flush writes back and evicts every page of file.
//
// It stops at the first pinned page with ErrPagePinned; frames handled before
// that stay written back and evicted.
func (m *Manager) Flush(file storage.File) error {
	name := file.Name()
	flushed := 0

	for i := range m.frames.descs {
		d := &m.frames.descs[i]
		if d.File == nil || d.File.Name() != name {
			continue
		}
		if !d.Valid {
			return badBuffer(d, name)
		}
		if d.PinCount != 0 {
			return fmt.Errorf("flush %s: page %d (frame %d, pins %d): %w",
				name, d.PageID, i, d.PinCount, ErrPagePinned)
		}
		if d.Dirty {
			if err := d.File.WritePage(m.frames.page(i)); err != nil {
				return fmt.Errorf("flush %s: write page %d: %w", name, d.PageID, err)
			}
			d.Dirty = false
		}
		m.dir.Remove(name, d.PageID)
		d.Clear()
		flushed++
	}

	m.log.Debug("bufferpool: flushed file", "file", name, "frames", flushed)
	return nil
}

// FlushAll flushes every file that has a page in the pool.
func (m *Manager) FlushAll() error {
	seen := make(map[string]struct{})
	var files []storage.File
	for i := range m.frames.descs {
		d := &m.frames.descs[i]
		if !d.Valid {
			continue
		}
		name := d.File.Name()
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		files = append(files, d.File)
	}

	for _, f := range files {
		if err := m.Flush(f); err != nil {
			return err
		}
	}
	return nil
}

// Close flushes every file and rejects further Fetch and Allocate calls.
// If the flush fails the pool stays open.
func (m *Manager) Close() error {
	if m.closed {
		return nil
	}
	if err := m.FlushAll(); err != nil {
		return fmt.Errorf("close: %w", err)
	}
	m.closed = true
	return nil
}
