package storage

import (
	"encoding/binary"
)

// Header offsets
const (
	offFlags    = 0
	offPageID   = 2
	offNextFree = 6
)

// Page flags
const (
	PageFlagFree uint16 = 1 << 0
)

// +------------------+ 0
// | flags    (2)     |
// | pageID   (4)     |
// | nextFree (4)     | <-- only meaningful while PageFlagFree is set
// +------------------+ HeaderSize
// |                  |
// |   Data           |
// |                  |
// +------------------+ Page Size (8192)
type Page struct {
	Buf []byte // fixed-size 8KB
}

// NewPage wraps buf and stamps a fresh header for pageID.
func NewPage(buf []byte, pageID PageID) (*Page, error) {
	if len(buf) != PageSize {
		return nil, ErrWrongSize
	}
	p := &Page{Buf: buf}
	p.init(pageID)
	return p, nil
}

// WrapPage wraps buf without touching its content.
func WrapPage(buf []byte) (*Page, error) {
	if len(buf) != PageSize {
		return nil, ErrWrongSize
	}
	return &Page{Buf: buf}, nil
}

// ---- low-level header getters/setters ----
func (p *Page) flags() uint16 {
	return binary.LittleEndian.Uint16(p.Buf[offFlags:])
}

func (p *Page) setFlags(v uint16) {
	binary.LittleEndian.PutUint16(p.Buf[offFlags:], v)
}

func (p *Page) PageID() PageID {
	return PageID(binary.LittleEndian.Uint32(p.Buf[offPageID:]))
}

func (p *Page) setPageID(v PageID) {
	binary.LittleEndian.PutUint32(p.Buf[offPageID:], uint32(v))
}

func (p *Page) nextFree() PageID {
	return PageID(binary.LittleEndian.Uint32(p.Buf[offNextFree:]))
}

func (p *Page) setNextFree(v PageID) {
	binary.LittleEndian.PutUint32(p.Buf[offNextFree:], uint32(v))
}

func (p *Page) init(pageID PageID) {
	clear(p.Buf)
	p.setFlags(0)
	p.setPageID(pageID)
}

// markFree turns the page into a free-list node pointing at next.
func (p *Page) markFree(next PageID) {
	id := p.PageID()
	p.init(id)
	p.setFlags(PageFlagFree)
	p.setNextFree(next)
}

// ---- public helpers ----

// Data is the payload area after the header. It aliases Buf.
func (p *Page) Data() []byte {
	return p.Buf[HeaderSize:]
}

func (p *Page) IsFree() bool {
	return p.flags()&PageFlagFree != 0
}

// CopyFrom overwrites p with the bytes of src, header included.
func (p *Page) CopyFrom(src *Page) {
	copy(p.Buf, src.Buf)
}

// Clone returns a detached copy of p.
func (p *Page) Clone() *Page {
	buf := make([]byte, len(p.Buf))
	copy(buf, p.Buf)
	return &Page{Buf: buf}
}
