package rfb

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func tpixelLE(c RGB) uint32 {
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

func TestHextileDecoderBackgroundPersistsAcrossTiles(t *testing.T) {
	pf := NewPixelFormat32()
	var buf bytes.Buffer

	// Tile 1 (0,0): BackgroundSpecified only, no subrects -> whole tile
	// filled with the background color.
	require.NoError(t, writeUint8(&buf, hextileBackgroundSpecified))
	require.NoError(t, writeUint32LE(&buf, tpixelLE(RGB{R: 9, G: 9, B: 9})))

	// Tile 2 (16,0): no bits set at all -> reuses tile 1's background,
	// still fills solid.
	require.NoError(t, writeUint8(&buf, 0))

	fb := NewFramebuffer(32, 16)
	ctx := &decodeContext{t: &buf, fb: fb, pf: pf}
	rect := Rectangle{X: 0, Y: 0, Width: 32, Height: 16, Encoding: EncodingHextile}

	require.NoError(t, hextileDecoder{}.decode(ctx, rect))
	require.Equal(t, RGB{R: 9, G: 9, B: 9}, fb.Pixel(0, 0))
	require.Equal(t, RGB{R: 9, G: 9, B: 9}, fb.Pixel(31, 15), "tile 2 must inherit tile 1's background")
}

func TestHextileDecoderColoredSubrect(t *testing.T) {
	pf := NewPixelFormat32()
	var buf bytes.Buffer

	mask := uint8(hextileBackgroundSpecified | hextileForegroundSpecified | hextileAnySubrects | hextileSubrectsColoured)
	require.NoError(t, writeUint8(&buf, mask))
	require.NoError(t, writeUint32LE(&buf, tpixelLE(RGB{R: 0, G: 0, B: 0})))   // background
	require.NoError(t, writeUint32LE(&buf, tpixelLE(RGB{R: 255, G: 0, B: 0}))) // foreground (unused, colored subrects)
	require.NoError(t, writeUint8(&buf, 1))                                   // 1 subrect
	require.NoError(t, writeUint32LE(&buf, tpixelLE(RGB{R: 0, G: 255, B: 0})))
	require.NoError(t, writeUint8(&buf, 0x00)) // x=0,y=0
	require.NoError(t, writeUint8(&buf, 0x00)) // w=1,h=1

	fb := NewFramebuffer(16, 16)
	ctx := &decodeContext{t: &buf, fb: fb, pf: pf}
	rect := Rectangle{X: 0, Y: 0, Width: 16, Height: 16, Encoding: EncodingHextile}

	require.NoError(t, hextileDecoder{}.decode(ctx, rect))
	require.Equal(t, RGB{R: 0, G: 255, B: 0}, fb.Pixel(0, 0))
	require.Equal(t, RGB{R: 0, G: 0, B: 0}, fb.Pixel(15, 15), "background fills the rest of the tile")
}

// TestHextileDecoderClampsSubrectToEdgeTile covers the last tile of a
// rectangle whose dimensions aren't a multiple of 16 (here a 4x4 edge
// tile): a subrect whose packed width would overrun that tile is
// clamped to what's left of it instead of erroring.
func TestHextileDecoderClampsSubrectToEdgeTile(t *testing.T) {
	pf := NewPixelFormat32()
	var buf bytes.Buffer

	// Tiles visited in (ty, tx) order for a 20x20 rectangle: (0,0)
	// 16x16, (16,0) 4x16, (0,16) 16x4, (16,16) 4x4 — the last being the
	// edge tile under test.
	require.NoError(t, writeUint8(&buf, 0))
	require.NoError(t, writeUint8(&buf, 0))
	require.NoError(t, writeUint8(&buf, 0))

	mask := uint8(hextileAnySubrects | hextileSubrectsColoured)
	require.NoError(t, writeUint8(&buf, mask))
	require.NoError(t, writeUint8(&buf, 1)) // 1 subrect
	require.NoError(t, writeUint32LE(&buf, tpixelLE(RGB{R: 1, G: 2, B: 3})))
	require.NoError(t, writeUint8(&buf, 0x00)) // x=0, y=0
	require.NoError(t, writeUint8(&buf, 0xf0)) // w=16 (clamps to 4), h=1

	fb := NewFramebuffer(20, 20)
	ctx := &decodeContext{t: &buf, fb: fb, pf: pf}
	rect := Rectangle{X: 0, Y: 0, Width: 20, Height: 20, Encoding: EncodingHextile}

	require.NoError(t, hextileDecoder{}.decode(ctx, rect))
	require.Equal(t, RGB{R: 1, G: 2, B: 3}, fb.Pixel(16, 16))
	require.Equal(t, RGB{R: 1, G: 2, B: 3}, fb.Pixel(19, 16), "clamped to the 4-wide edge tile")
}
