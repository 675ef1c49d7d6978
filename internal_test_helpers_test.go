package rfb

import (
	"bytes"
	"encoding/binary"
	"hash/adler32"
	"time"
)

// buildZlibStored wraps data in a valid zlib stream using a single
// uncompressed ("stored") deflate block, so tests can feed real
// zlib-compressed bytes into the engine's persistent inflate contexts
// without needing the deflate compressor itself.
func buildZlibStored(data []byte) []byte {
	var buf bytes.Buffer
	buf.Write([]byte{0x78, 0x01})
	buf.WriteByte(0x01) // BFINAL=1, BTYPE=00 (stored), byte-aligned
	length := uint16(len(data))
	var lenBytes [2]byte
	binary.LittleEndian.PutUint16(lenBytes[:], length)
	buf.Write(lenBytes[:])
	var nlenBytes [2]byte
	binary.LittleEndian.PutUint16(nlenBytes[:], ^length)
	buf.Write(nlenBytes[:])
	buf.Write(data)
	var sum [4]byte
	binary.BigEndian.PutUint32(sum[:], adler32.Checksum(data))
	buf.Write(sum[:])
	return buf.Bytes()
}

// fakeTransport is an in-memory Transport backed by two buffers: writes
// land in out, reads drain in. It never blocks and treats SetReadDeadline
// as a no-op, matching the contract Transport documents for
// implementations that can't support deadlines.
type fakeTransport struct {
	in  *bytes.Buffer
	out *bytes.Buffer
}

func newFakeTransport(serverBytes []byte) *fakeTransport {
	return &fakeTransport{in: bytes.NewBuffer(serverBytes), out: &bytes.Buffer{}}
}

func (f *fakeTransport) Read(p []byte) (int, error)            { return f.in.Read(p) }
func (f *fakeTransport) Write(p []byte) (int, error)           { return f.out.Write(p) }
func (f *fakeTransport) Close() error                          { return nil }
func (f *fakeTransport) SetReadDeadline(t time.Time) error     { return nil }

func (f *fakeTransport) feed(b []byte) { f.in.Write(b) }
