package bufferpool

import "github.com/tuannm99/novapool/internal/storage"

type releaser interface {
	Release(file storage.File, pageID storage.PageID, dirty bool) error
}

// PageHandle refers to a pinned page by frame index. It is only meaningful
// until the pin taken for it is released.
type PageHandle struct {
	owner  releaser
	pages  *frameTable
	frame  int
	file   storage.File
	pageID storage.PageID
}

func (h *PageHandle) FrameID() int { return h.frame }

func (h *PageHandle) PageID() storage.PageID { return h.pageID }

func (h *PageHandle) File() storage.File { return h.file }

// Page returns the frame's page. It aliases pool memory.
func (h *PageHandle) Page() *storage.Page { return h.pages.page(h.frame) }

// Data returns the page payload. It aliases pool memory.
func (h *PageHandle) Data() []byte { return h.Page().Data() }

// Valid reports whether the frame still holds this page with at least one pin.
func (h *PageHandle) Valid() bool {
	d := &h.pages.descs[h.frame]
	return d.Valid &&
		d.PinCount > 0 &&
		d.PageID == h.pageID &&
		d.fileName() == h.file.Name()
}

// Release drops the pin this handle was returned with.
func (h *PageHandle) Release(dirty bool) error {
	return h.owner.Release(h.file, h.pageID, dirty)
}
