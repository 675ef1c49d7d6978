package rfb

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRawDecoder(t *testing.T) {
	pf := NewPixelFormat32()
	var buf bytes.Buffer
	pixels := []RGB{
		{R: 1, G: 2, B: 3}, {R: 4, G: 5, B: 6},
		{R: 7, G: 8, B: 9}, {R: 10, G: 11, B: 12},
	}
	for _, c := range pixels {
		pixel := uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
		require.NoError(t, writeUint32LE(&buf, pixel))
	}

	fb := NewFramebuffer(2, 2)
	ctx := &decodeContext{t: &buf, fb: fb, pf: pf}
	rect := Rectangle{X: 0, Y: 0, Width: 2, Height: 2, Encoding: EncodingRaw}

	require.NoError(t, rawDecoder{}.decode(ctx, rect))
	require.Equal(t, pixels[0], fb.Pixel(0, 0))
	require.Equal(t, pixels[1], fb.Pixel(1, 0))
	require.Equal(t, pixels[2], fb.Pixel(0, 1))
	require.Equal(t, pixels[3], fb.Pixel(1, 1))
}
