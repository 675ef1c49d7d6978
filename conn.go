package rfb

import (
	"io"
	"time"
)

// Transport is the byte-stream collaborator the engine borrows but never
// owns (§1, §5): any reliable, ordered, full-duplex byte stream. net.Conn
// satisfies it directly; callers using an in-memory pipe or a recorded
// session only need to implement these four methods.
type Transport interface {
	io.Reader
	io.Writer
	io.Closer
	// SetReadDeadline bounds the next Read call. The engine uses it to
	// implement the ~1-5s decode-stall timeout in §5; implementations
	// that cannot support deadlines may no-op and return nil.
	SetReadDeadline(t time.Time) error
}
