package bufferpool

import (
	"fmt"

	"github.com/tuannm99/novapool/internal/storage"
)

// PageTag uniquely identifies a cached page: (file name, page id).
type PageTag struct {
	File   string
	PageID storage.PageID
}

// PageDirectory maps cached pages to the frame holding them. It must hold
// exactly one entry per valid frame.
type PageDirectory struct {
	table map[PageTag]int
}

func NewPageDirectory(capacity int) *PageDirectory {
	return &PageDirectory{table: make(map[PageTag]int, capacity+capacity/5+1)}
}

// Insert adds (file,pageID) -> frame. An existing entry for the key means the
// caller skipped its lookup and is reported as ErrBadBufferState.
func (d *PageDirectory) Insert(file string, pageID storage.PageID, frame int) error {
	tag := PageTag{File: file, PageID: pageID}
	if old, ok := d.table[tag]; ok {
		return fmt.Errorf("%w: page %d of %s already in frame %d", ErrBadBufferState, pageID, file, old)
	}
	d.table[tag] = frame
	return nil
}

// Lookup returns the frame holding (file,pageID). ok is false on a miss.
func (d *PageDirectory) Lookup(file string, pageID storage.PageID) (frame int, ok bool) {
	frame, ok = d.table[PageTag{File: file, PageID: pageID}]
	return frame, ok
}

func (d *PageDirectory) Remove(file string, pageID storage.PageID) {
	delete(d.table, PageTag{File: file, PageID: pageID})
}

func (d *PageDirectory) Len() int { return len(d.table) }
