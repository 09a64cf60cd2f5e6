package storage

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"io"
	"unicode"
)

type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Fprintf(format string, a ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, a...)
}

// ASCII preview: printable -> itself, else '.'
func asciiPreview(b []byte) string {
	var buf bytes.Buffer
	for _, c := range b {
		r := rune(c)
		if unicode.IsPrint(r) && r < unicode.MaxASCII {
			buf.WriteRune(r)
		} else {
			buf.WriteByte('.')
		}
	}
	return buf.String()
}

// Debug prints the header and a short preview of the payload.
func (p *Page) Debug(w io.Writer) error {
	ew := &errWriter{w: w}

	const maxPreview = 32
	preview := p.Data()
	if len(preview) > maxPreview {
		preview = preview[:maxPreview]
	}

	ew.Fprintf("=== Page Debug ===\n")
	ew.Fprintf("pageID=%d flags=0x%04x free=%v nextFree=%d\n",
		p.PageID(), p.flags(), p.IsFree(), p.nextFree())
	ew.Fprintf("preview(hex)=%s\n", hex.EncodeToString(preview))
	ew.Fprintf("preview(ascii)=\"%s\"\n", asciiPreview(preview))
	ew.Fprintf("=== End Page Debug ===\n")
	return ew.err
}

func (p *Page) DebugString() string {
	var b bytes.Buffer
	if err := p.Debug(&b); err != nil {
		_, _ = b.WriteString("\n<debug write error: " + err.Error() + ">\n")
	}
	return b.String()
}
