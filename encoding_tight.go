package rfb

import (
	"bytes"
	"image/jpeg"
	"io"

	"github.com/soramimi/rfbclient/rfberr"
)

// Tight compression-control byte layout (§4.9): low nibble is a zlib
// stream reset mask; the high bits pick Fill, JPEG or Basic. Basic in
// turn carries a 2-bit stream id and an explicit-filter flag.
const (
	tightCtrlFill       = 0x80
	tightCtrlJPEG        = 0x90
	tightCtrlExplicitFilter = 0x40
	tightStreamIDMask    = 0x30
)

// Tight filter ids, read only when the explicit-filter flag is set.
const (
	tightFilterCopy     = 0
	tightFilterPalette  = 1
	tightFilterGradient = 2
)

const tightMinToCompress = 12

// tightDecoder implements Tight (§4.9): a per-rectangle compression
// control byte selects Fill (one solid TPIXEL), JPEG (a standard JPEG
// stream decoded with image/jpeg) or Basic compression, which applies
// one of three pixel filters (Copy, Palette, Gradient) to a byte stream
// that is zlib-compressed against one of four persistent, independently
// resettable stream contexts, or left raw when too small to be worth
// compressing. TPIXELs are always read as 3 bytes (R, G, B), whatever
// pixel format the server announced; the decoder does not read pixel
// formats other than 24-bit-depth true color correctly. Grounded on the upstream
// client's TightEncoding.Read, getTightColor, readTightLength and
// decodeGradData.
type tightDecoder struct{}

func (tightDecoder) decode(ctx *decodeContext, rect Rectangle) error {
	ctrl, err := readUint8(ctx.t)
	if err != nil {
		return err
	}
	ctx.tight.resetMask(ctrl & 0x0f)

	switch ctrl & 0xf0 {
	case tightCtrlJPEG:
		return decodeTightJPEG(ctx, rect)
	case tightCtrlFill:
		c, err := readTPixel(ctx.t)
		if err != nil {
			return err
		}
		fillTile(ctx.fb, int(rect.X), int(rect.Y), int(rect.Width), int(rect.Height), c)
		return nil
	default:
		streamID := int(ctrl&tightStreamIDMask) >> 4
		explicitFilter := ctrl&tightCtrlExplicitFilter != 0
		return decodeTightBasic(ctx, rect, streamID, explicitFilter)
	}
}

func decodeTightJPEG(ctx *decodeContext, rect Rectangle) error {
	length, err := readTightLength(ctx.t)
	if err != nil {
		return err
	}
	raw, err := readBytes(ctx.t, length)
	if err != nil {
		return err
	}
	img, err := jpeg.Decode(bytes.NewReader(raw))
	if err != nil {
		return rfberr.DecoderError("tight jpeg decode: %v", err)
	}
	bounds := img.Bounds()
	for y := 0; y < bounds.Dy() && y < int(rect.Height); y++ {
		for x := 0; x < bounds.Dx() && x < int(rect.Width); x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			ctx.fb.PutPixel(int(rect.X)+x, int(rect.Y)+y, RGB{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8)})
		}
	}
	return nil
}

func decodeTightBasic(ctx *decodeContext, rect Rectangle, streamID int, explicitFilter bool) error {
	filter := tightFilterCopy
	if explicitFilter {
		f, err := readUint8(ctx.t)
		if err != nil {
			return err
		}
		filter = int(f)
	}

	w, h := int(rect.Width), int(rect.Height)

	switch filter {
	case tightFilterCopy:
		raw, err := readTightPayload(ctx, streamID, w*h*3)
		if err != nil {
			return err
		}
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				off := (y*w + x) * 3
				ctx.fb.PutPixel(int(rect.X)+x, int(rect.Y)+y, RGB{R: raw[off], G: raw[off+1], B: raw[off+2]})
			}
		}
		return nil

	case tightFilterGradient:
		raw, err := readTightPayload(ctx, streamID, w*h*3)
		if err != nil {
			return err
		}
		decodeTightGradient(ctx.fb, rect, raw, w, h)
		return nil

	case tightFilterPalette:
		numColorsByte, err := readUint8(ctx.t)
		if err != nil {
			return err
		}
		numColors := int(numColorsByte) + 1
		paletteBytes := numColors * 3
		indexBits := 8
		rowBytes := w
		if numColors <= 2 {
			indexBits = 1
			rowBytes = (w + 7) / 8
		}
		total := paletteBytes + rowBytes*h
		raw, err := readTightPayload(ctx, streamID, total)
		if err != nil {
			return err
		}
		palette := make([]RGB, numColors)
		for i := 0; i < numColors; i++ {
			off := i * 3
			palette[i] = RGB{R: raw[off], G: raw[off+1], B: raw[off+2]}
		}
		data := raw[paletteBytes:]
		for y := 0; y < h; y++ {
			row := data[y*rowBytes : (y+1)*rowBytes]
			for x := 0; x < w; x++ {
				var idx int
				if indexBits == 1 {
					idx = int((row[x/8] >> uint(7-x%8)) & 1)
				} else {
					idx = int(row[x])
				}
				if idx >= len(palette) {
					return rfberr.DecoderError("tight palette index %d out of range", idx)
				}
				ctx.fb.PutPixel(int(rect.X)+x, int(rect.Y)+y, palette[idx])
			}
		}
		return nil

	default:
		return rfberr.ProtocolViolation("unsupported tight filter %d", filter)
	}
}

// readTightPayload returns exactly want bytes of filtered pixel data,
// either raw (below the compression threshold) or inflated from the
// given zlib stream id behind an explicit compact length prefix.
func readTightPayload(ctx *decodeContext, streamID int, want int) ([]byte, error) {
	if want < tightMinToCompress {
		return readBytes(ctx.t, want)
	}
	length, err := readTightLength(ctx.t)
	if err != nil {
		return nil, err
	}
	compressed, err := readBytes(ctx.t, length)
	if err != nil {
		return nil, err
	}
	return ctx.tight.inflate(streamID, compressed, want)
}

// readTPixel reads a TPIXEL: 3 raw bytes (R, G, B), the wire width
// Tight always uses for 24-bit-depth true color regardless of the
// underlying pixel format's bits-per-pixel.
func readTPixel(r io.Reader) (RGB, error) {
	b, err := readBytes(r, 3)
	if err != nil {
		return RGB{}, err
	}
	return RGB{R: b[0], G: b[1], B: b[2]}, nil
}

// readTightLength reads the compact 1-3 byte length prefix used ahead
// of each zlib-compressed Tight payload: each byte contributes its low
// 7 bits, continuing while the high bit is set.
func readTightLength(r io.Reader) (int, error) {
	length := 0
	for shift := 0; shift < 21; shift += 7 {
		b, err := readUint8(r)
		if err != nil {
			return 0, err
		}
		length |= int(b&0x7f) << shift
		if b&0x80 == 0 {
			break
		}
	}
	return length, nil
}

// decodeTightGradient reverses the Gradient filter: each channel of
// each pixel was encoded as (actual - predicted) mod 256, where
// predicted is left + above - aboveleft (0 at missing neighbors).
func decodeTightGradient(fb *Framebuffer, rect Rectangle, raw []byte, w, h int) {
	get := func(x, y, ch int) int {
		if x < 0 || y < 0 {
			return 0
		}
		return int(raw[(y*w+x)*3+ch])
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			off := (y*w + x) * 3
			var px [3]byte
			for ch := 0; ch < 3; ch++ {
				left, above, aboveLeft := 0, 0, 0
				if x > 0 {
					left = get(x-1, y, ch)
				}
				if y > 0 {
					above = get(x, y-1, ch)
				}
				if x > 0 && y > 0 {
					aboveLeft = get(x-1, y-1, ch)
				}
				predicted := left + above - aboveLeft
				if predicted < 0 {
					predicted = 0
				} else if predicted > 255 {
					predicted = 255
				}
				px[ch] = byte(predicted) + raw[off+ch]
			}
			raw[off], raw[off+1], raw[off+2] = px[0], px[1], px[2]
			fb.PutPixel(int(rect.X)+x, int(rect.Y)+y, RGB{R: px[0], G: px[1], B: px[2]})
		}
	}
}
