package rfb

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadVersionLineVariants(t *testing.T) {
	cases := map[string]ProtocolVersion{
		"RFB 003.003\n": ProtocolVersion33,
		"RFB 003.007\n": ProtocolVersion37,
		"RFB 003.008\n": ProtocolVersion38,
		"RFB 003.889\n": ProtocolVersion38, // any minor >= 8 rounds to 3.8
	}
	for line, want := range cases {
		v, err := readVersionLine(newFakeTransport([]byte(line)))
		require.NoError(t, err)
		require.Equal(t, want, v)
	}
}

func TestReadVersionLineRejectsUnknownMajor(t *testing.T) {
	_, err := readVersionLine(newFakeTransport([]byte("RFB 004.000\n")))
	require.Error(t, err)
}

// TestWriteVersionLineAlwaysEchoes33 locks in SPEC_FULL.md §9 open
// question 1: this engine always echoes 3.3 regardless of what the
// server offered.
func TestWriteVersionLineAlwaysEchoes33(t *testing.T) {
	tr := newFakeTransport(nil)
	require.NoError(t, writeVersionLine(tr))
	require.Equal(t, "RFB 003.003\n", tr.out.String())
}

func TestHandshakeFullSequence(t *testing.T) {
	// A deliberately non-default format (16bpp, depth16, big-endian) so
	// the assertions below can tell "echoed the server's format" apart
	// from "sent the client's own default".
	serverFormat := PixelFormat{
		BitsPerPixel: 16,
		Depth:        16,
		BigEndian:    1,
		TrueColor:    1,
		RedMax:       31,
		GreenMax:     63,
		BlueMax:      31,
		RedShift:     11,
		GreenShift:   5,
		BlueShift:    0,
	}

	var server bytes.Buffer
	server.WriteString("RFB 003.008\n")
	require.NoError(t, writeUint32(&server, uint32(SecurityTypeNone)))
	require.NoError(t, writeUint16(&server, 800))
	require.NoError(t, writeUint16(&server, 600))
	require.NoError(t, writePixelFormat(&server, serverFormat))
	require.NoError(t, writeUint32(&server, 4))
	server.WriteString("test")

	t1 := newFakeTransport(server.Bytes())
	h := &recordingHandler{}

	si, err := handshake(t1, h)
	require.NoError(t, err)
	require.Equal(t, uint16(800), si.Width)
	require.Equal(t, uint16(600), si.Height)
	require.Equal(t, "test", si.Name)
	require.Equal(t, serverFormat, si.PixelFormat)
	require.Equal(t, ProtocolVersion38, h.version)
	require.Equal(t, SecurityTypeNone, h.security)
	require.Equal(t, 800, h.fbWidth)

	// client wrote: version echo, ClientInit, SetPixelFormat (carrying
	// the server's own format back unchanged, per §4.4 step 5),
	// SetEncodings, initial FramebufferUpdateRequest.
	r := bytes.NewReader(t1.out.Bytes())
	v, err := readBytes(r, 12)
	require.NoError(t, err)
	require.Equal(t, "RFB 003.003\n", string(v))
	shared, err := readUint8(r)
	require.NoError(t, err)
	require.Equal(t, uint8(1), shared)
	mt, err := readUint8(r)
	require.NoError(t, err)
	require.Equal(t, msgSetPixelFormat, mt)
	if _, err := readBytes(r, 3); err != nil { // SetPixelFormat padding
		t.Fatal(err)
	}
	sentFormat, err := readPixelFormat(r)
	require.NoError(t, err)
	require.Equal(t, serverFormat, sentFormat)
}

type recordingHandler struct {
	NoOpHandler
	version  ProtocolVersion
	security SecurityType
	fbWidth  int
}

func (h *recordingHandler) OnProtocolVersion(v ProtocolVersion) { h.version = v }
func (h *recordingHandler) OnSecurityType(t SecurityType)       { h.security = t }
func (h *recordingHandler) OnFramebufferSize(w, ht int)         { h.fbWidth = w }
