package rfb

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeZRLETileSolid(t *testing.T) {
	pf := NewPixelFormat32()
	var buf bytes.Buffer
	require.NoError(t, writeUint8(&buf, 1)) // solid
	require.NoError(t, writeUint32LE(&buf, tpixelLE(RGB{R: 1, G: 2, B: 3})))

	fb := NewFramebuffer(4, 4)
	require.NoError(t, decodeZRLETile(&buf, fb, pf, 0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			require.Equal(t, RGB{R: 1, G: 2, B: 3}, fb.Pixel(x, y))
		}
	}
}

func TestDecodeZRLETilePlainRLE(t *testing.T) {
	pf := NewPixelFormat32()
	var buf bytes.Buffer
	require.NoError(t, writeUint8(&buf, 128)) // plain RLE
	// run of 3 red pixels, then 1 blue pixel, filling a 2x2 tile
	require.NoError(t, writeUint32LE(&buf, tpixelLE(RGB{R: 255})))
	require.NoError(t, writeUint8(&buf, 2)) // length = 1 + 2 = 3
	require.NoError(t, writeUint32LE(&buf, tpixelLE(RGB{B: 255})))
	require.NoError(t, writeUint8(&buf, 0)) // length = 1

	fb := NewFramebuffer(2, 2)
	require.NoError(t, decodeZRLETile(&buf, fb, pf, 0, 0, 2, 2))
	require.Equal(t, RGB{R: 255}, fb.Pixel(0, 0))
	require.Equal(t, RGB{R: 255}, fb.Pixel(1, 0))
	require.Equal(t, RGB{R: 255}, fb.Pixel(0, 1))
	require.Equal(t, RGB{B: 255}, fb.Pixel(1, 1))
}

func TestDecodeZRLETilePackedPalette(t *testing.T) {
	pf := NewPixelFormat32()
	var buf bytes.Buffer
	require.NoError(t, writeUint8(&buf, 2)) // 2-color packed palette, 1 bit/pixel
	require.NoError(t, writeUint32LE(&buf, tpixelLE(RGB{R: 1})))
	require.NoError(t, writeUint32LE(&buf, tpixelLE(RGB{G: 1})))
	// 2x2 tile, 1 bit per pixel, row padded to 1 byte: row0 = 1,0 -> 0b10000000; row1 = 0,1 -> 0b01000000
	require.NoError(t, writeUint8(&buf, 0x80))
	require.NoError(t, writeUint8(&buf, 0x40))

	fb := NewFramebuffer(2, 2)
	require.NoError(t, decodeZRLETile(&buf, fb, pf, 0, 0, 2, 2))
	require.Equal(t, RGB{G: 1}, fb.Pixel(0, 0))
	require.Equal(t, RGB{R: 1}, fb.Pixel(1, 0))
	require.Equal(t, RGB{R: 1}, fb.Pixel(0, 1))
	require.Equal(t, RGB{G: 1}, fb.Pixel(1, 1))
}

// TestZRLEDecoderFullRectangle exercises the real wire path, including
// the persistent zlib stream, with a hand-built stored (uncompressed)
// zlib payload wrapping one solid 8x8 tile.
func TestZRLEDecoderFullRectangle(t *testing.T) {
	pf := NewPixelFormat32()
	var tile bytes.Buffer
	require.NoError(t, writeUint8(&tile, 1))
	require.NoError(t, writeUint32LE(&tile, tpixelLE(RGB{R: 7, G: 8, B: 9})))
	compressed := buildZlibStored(tile.Bytes())

	var wire bytes.Buffer
	require.NoError(t, writeUint32(&wire, uint32(len(compressed))))
	wire.Write(compressed)

	fb := NewFramebuffer(8, 8)
	var zrle zlibStream
	ctx := &decodeContext{t: &wire, fb: fb, pf: pf, zrle: &zrle}
	rect := Rectangle{X: 0, Y: 0, Width: 8, Height: 8, Encoding: EncodingZRLE}

	require.NoError(t, zrleDecoder{}.decode(ctx, rect))
	require.Equal(t, RGB{R: 7, G: 8, B: 9}, fb.Pixel(0, 0))
	require.Equal(t, RGB{R: 7, G: 8, B: 9}, fb.Pixel(7, 7))
}
