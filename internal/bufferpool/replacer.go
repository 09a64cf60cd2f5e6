package bufferpool

import (
	"fmt"
	"log/slog"

	"github.com/tuannm99/novapool/pkg/clockx"
)

// ClockReplacer picks frames for reuse with the second-chance clock and
// evicts the occupant of the chosen frame.
type ClockReplacer struct {
	clock  *clockx.Clock
	frames *frameTable
	dir    *PageDirectory
	log    *slog.Logger
}

func newClockReplacer(frames *frameTable, dir *PageDirectory, log *slog.Logger) *ClockReplacer {
	return &ClockReplacer{
		clock:  clockx.New(frames.Len()),
		frames: frames,
		dir:    dir,
		log:    log,
	}
}

// Hand returns the frame index the clock hand points at.
func (r *ClockReplacer) Hand() int { return r.clock.Hand() }

// SelectVictim returns an empty frame. An occupied victim is written back if
// dirty, dropped from the directory and cleared. ErrPoolExhausted means every
// frame is pinned; nothing was evicted in that case. If the write-back fails the
// victim stays resident and dirty.
func (r *ClockReplacer) SelectVictim() (int, error) {
	idx, ok := r.clock.Victim(r.frames)
	if !ok {
		return -1, ErrPoolExhausted
	}

	d := &r.frames.descs[idx]
	if !d.Valid {
		d.Clear()
		return idx, nil
	}

	name := d.File.Name()
	if d.Dirty {
		if err := d.File.WritePage(r.frames.page(idx)); err != nil {
			return -1, fmt.Errorf("bufferpool: write back page %d of %s: %w", d.PageID, name, err)
		}
	}

	r.log.Debug("bufferpool: evicted page",
		"frame", idx,
		"file", name,
		"pageID", d.PageID,
		"dirty", d.Dirty,
	)
	r.dir.Remove(name, d.PageID)
	d.Clear()
	return idx, nil
}
