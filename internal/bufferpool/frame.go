package bufferpool

import (
	"fmt"

	"github.com/tuannm99/novapool/internal/storage"
	"github.com/tuannm99/novapool/pkg/clockx"
)

// FrameDescriptor is the metadata of one frame. File and PageID are only
// meaningful while Valid. File is not owned by the pool.
type FrameDescriptor struct {
	FrameID  int
	File     storage.File
	PageID   storage.PageID
	Valid    bool
	Dirty    bool
	RefBit   bool
	PinCount int32
}

// Clear resets the descriptor to the empty state.
func (d *FrameDescriptor) Clear() {
	d.File = nil
	d.PageID = storage.InvalidPageID
	d.Valid = false
	d.Dirty = false
	d.RefBit = false
	d.PinCount = 0
}

// Set makes the descriptor own (file,pageID), pinned once and referenced.
func (d *FrameDescriptor) Set(file storage.File, pageID storage.PageID) {
	d.File = file
	d.PageID = pageID
	d.Valid = true
	d.Dirty = false
	d.RefBit = true
	d.PinCount = 1
}

func (d *FrameDescriptor) Evictable() bool {
	return d.Valid && d.PinCount == 0
}

func (d *FrameDescriptor) fileName() string {
	if d.File == nil {
		return ""
	}
	return d.File.Name()
}

func (d *FrameDescriptor) String() string {
	if !d.Valid {
		return fmt.Sprintf("valid:false pinCnt:%d dirty:%v refbit:%v", d.PinCount, d.Dirty, d.RefBit)
	}
	return fmt.Sprintf("file:%s pageNo:%d valid:true pinCnt:%d dirty:%v refbit:%v",
		d.fileName(), d.PageID, d.PinCount, d.Dirty, d.RefBit)
}

var _ clockx.Slots = (*frameTable)(nil)

// frameTable is the frame arena plus one descriptor per frame.
// Frame i owns arena[i*PageSize : (i+1)*PageSize].
type frameTable struct {
	arena []byte
	pages []storage.Page
	descs []FrameDescriptor
}

func newFrameTable(capacity int) *frameTable {
	ft := &frameTable{
		arena: make([]byte, capacity*storage.PageSize),
		pages: make([]storage.Page, capacity),
		descs: make([]FrameDescriptor, capacity),
	}
	for i := range capacity {
		ft.pages[i].Buf = ft.arena[i*storage.PageSize : (i+1)*storage.PageSize : (i+1)*storage.PageSize]
		ft.descs[i].FrameID = i
		ft.descs[i].Clear()
	}
	return ft
}

func (ft *frameTable) page(i int) *storage.Page { return &ft.pages[i] }

// load copies src into frame i.
func (ft *frameTable) load(i int, src *storage.Page) {
	ft.pages[i].CopyFrom(src)
}

// clockx.Slots
func (ft *frameTable) Len() int              { return len(ft.descs) }
func (ft *frameTable) Occupied(i int) bool   { return ft.descs[i].Valid }
func (ft *frameTable) Referenced(i int) bool { return ft.descs[i].RefBit }
func (ft *frameTable) ClearRef(i int)        { ft.descs[i].RefBit = false }
func (ft *frameTable) SetRef(i int)          { ft.descs[i].RefBit = true }
func (ft *frameTable) Pinned(i int) bool     { return ft.descs[i].PinCount > 0 }
