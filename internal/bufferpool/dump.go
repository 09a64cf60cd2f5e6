package bufferpool

import (
	"bytes"
	"fmt"
	"io"
)

// Dump writes one line per frame followed by the number of valid frames,
// which it also returns.
func (m *Manager) Dump(w io.Writer) (int, error) {
	valid := 0
	for i := range m.frames.descs {
		d := &m.frames.descs[i]
		if _, err := fmt.Fprintf(w, "FrameNo:%d %s\n", i, d.String()); err != nil {
			return valid, err
		}
		if d.Valid {
			valid++
		}
	}
	if _, err := fmt.Fprintf(w, "Total Number of Valid Frames:%d\n", valid); err != nil {
		return valid, err
	}
	return valid, nil
}

func (m *Manager) DumpString() string {
	var b bytes.Buffer
	if _, err := m.Dump(&b); err != nil {
		_, _ = b.WriteString("\n<dump write error: " + err.Error() + ">\n")
	}
	return b.String()
}
