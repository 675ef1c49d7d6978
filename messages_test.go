package rfb

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteSetPixelFormatWire(t *testing.T) {
	var buf bytes.Buffer
	pf := NewPixelFormat32()
	require.NoError(t, writeSetPixelFormat(&buf, pf))

	require.Equal(t, byte(msgSetPixelFormat), buf.Bytes()[0])
	require.Equal(t, []byte{0, 0, 0}, buf.Bytes()[1:4])
	got, err := readPixelFormat(bytes.NewReader(buf.Bytes()[4:]))
	require.NoError(t, err)
	require.Equal(t, pf, got)
}

func TestWriteSetEncodingsWire(t *testing.T) {
	var buf bytes.Buffer
	encs := []EncodingType{EncodingTight, EncodingRaw}
	require.NoError(t, writeSetEncodings(&buf, encs))

	r := bytes.NewReader(buf.Bytes())
	mt, _ := readUint8(r)
	require.Equal(t, msgSetEncodings, mt)
	_, _ = readUint8(r) // padding
	count, _ := readUint16(r)
	require.Equal(t, uint16(2), count)
	for _, want := range encs {
		got, err := readInt32(r)
		require.NoError(t, err)
		require.Equal(t, int32(want), got)
	}
}

func TestWriteFramebufferUpdateRequestWire(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeFramebufferUpdateRequest(&buf, true, 1, 2, 3, 4))

	r := bytes.NewReader(buf.Bytes())
	mt, _ := readUint8(r)
	require.Equal(t, msgFramebufferUpdateRequest, mt)
	inc, _ := readUint8(r)
	require.Equal(t, uint8(1), inc)
	x, _ := readUint16(r)
	y, _ := readUint16(r)
	w, _ := readUint16(r)
	h, _ := readUint16(r)
	require.Equal(t, [4]uint16{1, 2, 3, 4}, [4]uint16{x, y, w, h})
}

func TestWriteKeyEventWire(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeKeyEvent(&buf, 0x41, true))

	r := bytes.NewReader(buf.Bytes())
	mt, _ := readUint8(r)
	require.Equal(t, msgKeyEvent, mt)
	down, _ := readUint8(r)
	require.Equal(t, uint8(1), down)
	_, _ = readBytes(r, 2) // padding
	sym, err := readUint32(r)
	require.NoError(t, err)
	require.Equal(t, uint32(0x41), sym)
}

func TestWritePointerEventWire(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writePointerEvent(&buf, ButtonLeft, 5, 6))

	r := bytes.NewReader(buf.Bytes())
	mt, _ := readUint8(r)
	require.Equal(t, msgPointerEvent, mt)
	mask, _ := readUint8(r)
	require.Equal(t, ButtonLeft, mask)
	x, _ := readUint16(r)
	y, _ := readUint16(r)
	require.Equal(t, uint16(5), x)
	require.Equal(t, uint16(6), y)
}
