package rfb

import (
	"bytes"
	"compress/zlib"
	"io"

	"github.com/soramimi/rfbclient/rfberr"
)

// zlibStream is one persistent inflate context: a growable input buffer
// feeding a zlib.Reader whose state must survive across many Read calls,
// since RFB compresses each payload against the dictionary built by all
// previous payloads on the same stream. Grounded on the upstream client's
// ZLibEncoding (single persistent unzipper) and TightEncoding.decoders
// (four independently resettable unzippers).
type zlibStream struct {
	buf    *bytes.Buffer
	reader io.ReadCloser
}

func (s *zlibStream) reset() {
	if s.reader != nil {
		s.reader.Close()
	}
	s.buf = nil
	s.reader = nil
}

// inflate feeds compressed onto the stream's dictionary and returns
// exactly want bytes of decompressed output.
func (s *zlibStream) inflate(compressed []byte, want int) ([]byte, error) {
	if s.reader == nil {
		s.buf = bytes.NewBuffer(compressed)
		r, err := zlib.NewReader(s.buf)
		if err != nil {
			return nil, rfberr.DecoderError("zlib init: %v", err)
		}
		s.reader = r
	} else {
		s.buf.Write(compressed)
	}

	out := make([]byte, want)
	if _, err := io.ReadFull(s.reader, out); err != nil {
		return nil, rfberr.DecoderError("zlib inflate: %v", err)
	}
	return out, nil
}

// zlibStreamPool holds the four persistent inflate contexts Tight
// multiplexes rectangles across by stream id (0-3).
type zlibStreamPool struct {
	slots [4]zlibStream
}

// resetMask clears the streams whose bit is set in mask's low 4 bits; the
// Tight decoder passes the compression-control byte's low nibble.
func (p *zlibStreamPool) resetMask(mask uint8) {
	for i := 0; i < 4; i++ {
		if mask&(1<<uint(i)) != 0 {
			p.slots[i].reset()
		}
	}
}

func (p *zlibStreamPool) inflate(id int, compressed []byte, want int) ([]byte, error) {
	return p.slots[id].inflate(compressed, want)
}

func (p *zlibStreamPool) resetAll() {
	for i := range p.slots {
		p.slots[i].reset()
	}
}
