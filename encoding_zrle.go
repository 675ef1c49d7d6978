package rfb

import (
	"io"

	"github.com/soramimi/rfbclient/rfberr"
)

const zrleTileSize = 64

// zrleTileStream adapts one zlibStream into an io.Reader that hands out
// the compressed rectangle payload on its first pull and nothing but
// already-buffered dictionary state afterward, so the wire.go helpers
// can read CPIXELs and counts off it exactly like any other stream.
type zrleTileStream struct {
	stream *zlibStream
	first  []byte
}

func (z *zrleTileStream) Read(p []byte) (int, error) {
	out, err := z.stream.inflate(z.first, len(p))
	z.first = nil
	if err != nil {
		return 0, err
	}
	copy(p, out)
	return len(p), nil
}

// zrleDecoder implements ZRLE (§4.8): the rectangle carries a 4-byte
// compressed length followed by that many zlib-compressed bytes, against
// a single inflate dictionary shared by every ZRLE rectangle for the
// life of the connection. The decompressed stream tiles the rectangle
// into 64x64 blocks (clipped at the rectangle's edge), each tagged with
// a subencoding byte: raw, solid, packed palette, plain RLE or palette
// RLE. Per SPEC_FULL.md §9 open question 2, CPIXELs are read as full
// pixel words sized by BitsPerPixel alone, so a 32bpp format always
// reads 4 bytes even at depth 24; they are never narrowed to 3 bytes.
type zrleDecoder struct{}

func (zrleDecoder) decode(ctx *decodeContext, rect Rectangle) error {
	length, err := readUint32(ctx.t)
	if err != nil {
		return err
	}
	compressed, err := readBytes(ctx.t, int(length))
	if err != nil {
		return err
	}
	zr := &zrleTileStream{stream: ctx.zrle, first: compressed}

	for ty := 0; ty < int(rect.Height); ty += zrleTileSize {
		tileHeight := zrleTileSize
		if remain := int(rect.Height) - ty; remain < tileHeight {
			tileHeight = remain
		}
		for tx := 0; tx < int(rect.Width); tx += zrleTileSize {
			tileWidth := zrleTileSize
			if remain := int(rect.Width) - tx; remain < tileWidth {
				tileWidth = remain
			}
			originX, originY := int(rect.X)+tx, int(rect.Y)+ty
			if err := decodeZRLETile(zr, ctx.fb, ctx.pf, originX, originY, tileWidth, tileHeight); err != nil {
				return err
			}
		}
	}
	return nil
}

func decodeZRLETile(r io.Reader, fb *Framebuffer, pf PixelFormat, ox, oy, w, h int) error {
	subenc, err := readUint8(r)
	if err != nil {
		return err
	}

	switch {
	case subenc == 0: // raw
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				c, err := readColor(r, pf)
				if err != nil {
					return err
				}
				fb.PutPixel(ox+x, oy+y, c)
			}
		}
		return nil

	case subenc == 1: // solid
		c, err := readColor(r, pf)
		if err != nil {
			return err
		}
		fillTile(fb, ox, oy, w, h, c)
		return nil

	case subenc >= 2 && subenc <= 16: // packed palette
		palette, err := readZRLEPalette(r, pf, int(subenc))
		if err != nil {
			return err
		}
		bits := zrlePackedBits(int(subenc))
		rowBytes := (w*bits + 7) / 8
		for y := 0; y < h; y++ {
			row, err := readBytes(r, rowBytes)
			if err != nil {
				return err
			}
			for x := 0; x < w; x++ {
				idx := zrleUnpackIndex(row, x, bits)
				if idx >= len(palette) {
					return rfberr.DecoderError("zrle palette index %d out of range", idx)
				}
				fb.PutPixel(ox+x, oy+y, palette[idx])
			}
		}
		return nil

	case subenc == 128: // plain RLE
		remaining := w * h
		for remaining > 0 {
			c, err := readColor(r, pf)
			if err != nil {
				return err
			}
			runLen, err := readZRLERunLength(r)
			if err != nil {
				return err
			}
			if runLen > remaining {
				return rfberr.DecoderError("zrle run length exceeds tile")
			}
			fillRun(fb, ox, oy, w, h, c, runLen, w*h-remaining)
			remaining -= runLen
		}
		return nil

	case subenc >= 130: // palette RLE
		palette, err := readZRLEPalette(r, pf, int(subenc)-128)
		if err != nil {
			return err
		}
		remaining := w * h
		for remaining > 0 {
			idx, err := readUint8(r)
			if err != nil {
				return err
			}
			runLen := 1
			paletteIndex := int(idx)
			if idx&0x80 != 0 {
				paletteIndex = int(idx & 0x7f)
				n, err := readZRLERunLength(r)
				if err != nil {
					return err
				}
				runLen = n
			}
			if paletteIndex >= len(palette) {
				return rfberr.DecoderError("zrle palette index %d out of range", paletteIndex)
			}
			if runLen > remaining {
				return rfberr.DecoderError("zrle run length exceeds tile")
			}
			fillRun(fb, ox, oy, w, h, palette[paletteIndex], runLen, w*h-remaining)
			remaining -= runLen
		}
		return nil

	default:
		return rfberr.ProtocolViolation("unsupported zrle tile subencoding %d", subenc)
	}
}

func readZRLEPalette(r io.Reader, pf PixelFormat, size int) ([]RGB, error) {
	palette := make([]RGB, size)
	for i := range palette {
		c, err := readColor(r, pf)
		if err != nil {
			return nil, err
		}
		palette[i] = c
	}
	return palette, nil
}

func zrlePackedBits(paletteSize int) int {
	switch {
	case paletteSize == 2:
		return 1
	case paletteSize <= 4:
		return 2
	default:
		return 4
	}
}

func zrleUnpackIndex(row []byte, x, bits int) int {
	bitOffset := x * bits
	byteOffset := bitOffset / 8
	shift := 8 - bits - (bitOffset % 8)
	mask := byte((1 << bits) - 1)
	return int((row[byteOffset] >> uint(shift)) & mask)
}

// readZRLERunLength reads the continuation-byte run-length encoding
// shared by ZRLE's plain and palette RLE subencodings: length starts at
// 1 and accumulates bytes until one below 255 is read.
func readZRLERunLength(r io.Reader) (int, error) {
	length := 1
	for {
		b, err := readUint8(r)
		if err != nil {
			return 0, err
		}
		length += int(b)
		if b != 255 {
			break
		}
	}
	return length, nil
}

// fillRun paints count pixels starting at linear offset start within a
// w x h tile rooted at (ox, oy), advancing row-major.
func fillRun(fb *Framebuffer, ox, oy, w, h int, c RGB, count, start int) {
	for i := 0; i < count; i++ {
		pos := start + i
		x, y := pos%w, pos/w
		fb.PutPixel(ox+x, oy+y, c)
	}
}
