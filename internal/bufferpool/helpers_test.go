package bufferpool

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tuannm99/novapool/internal/storage"
)

var errInjected = errors.New("injected write failure")

func newTestManager(t *testing.T, capacity int) *Manager {
	t.Helper()
	return NewManager(capacity, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// seedFile returns a MemFile holding n pages (ids 1..n); page i carries byte i
// at the start of its payload.
func seedFile(t *testing.T, name string, n int) *storage.MemFile {
	t.Helper()

	f := storage.NewMemFile(name)
	for i := 1; i <= n; i++ {
		p, err := f.AllocatePage()
		require.NoError(t, err)
		p.Data()[0] = byte(i)
		require.NoError(t, f.WritePage(p))
	}
	return f
}

// failingFile refuses every write while fail is set.
type failingFile struct {
	*storage.MemFile
	fail bool
}

func (f *failingFile) WritePage(p *storage.Page) error {
	if f.fail {
		return errInjected
	}
	return f.MemFile.WritePage(p)
}

func requireResident(t *testing.T, m *Manager, f storage.File, pageID storage.PageID) *FrameDescriptor {
	t.Helper()

	idx, ok := m.dir.Lookup(f.Name(), pageID)
	require.True(t, ok, "page %d of %s should be resident", pageID, f.Name())
	d := &m.frames.descs[idx]
	require.True(t, d.Valid)
	require.Equal(t, pageID, d.PageID)
	require.Equal(t, f.Name(), d.File.Name())
	return d
}

func requireNotResident(t *testing.T, m *Manager, f storage.File, pageID storage.PageID) {
	t.Helper()

	_, ok := m.dir.Lookup(f.Name(), pageID)
	require.False(t, ok, "page %d of %s should not be resident", pageID, f.Name())
	for i := range m.frames.descs {
		d := &m.frames.descs[i]
		if d.Valid && d.PageID == pageID && d.File.Name() == f.Name() {
			t.Fatalf("frame %d still holds page %d of %s", i, pageID, f.Name())
		}
	}
}

// requireConsistent checks the directory is a bijection onto valid frames.
func requireConsistent(t *testing.T, m *Manager) {
	t.Helper()

	valid := 0
	for i := range m.frames.descs {
		d := &m.frames.descs[i]
		if !d.Valid {
			require.Zero(t, d.PinCount, "invalid frame %d is pinned", i)
			continue
		}
		valid++
		idx, ok := m.dir.Lookup(d.File.Name(), d.PageID)
		require.True(t, ok, "valid frame %d has no directory entry", i)
		require.Equal(t, i, idx)
	}
	require.Equal(t, valid, m.dir.Len())
}
