package rfb

import (
	"encoding/binary"
	"io"

	"github.com/soramimi/rfbclient/rfberr"
)

// RGB is the 24-bit color every decoder ultimately writes into the
// framebuffer. Channel values are the masked-and-shifted pixel bits
// written verbatim — not rescaled against RedMax/GreenMax/BlueMax. This
// matches the reference client's qRgb(r, g, b) call sites exactly; see
// SPEC_FULL.md §9 open question 3.
type RGB struct {
	R, G, B uint8
}

// readPixel reads one pixel word in pf's bit width and byte order.
func readPixel(r io.Reader, pf PixelFormat) (uint32, error) {
	order := pf.order()
	switch pf.BitsPerPixel {
	case 8:
		var v uint8
		if err := binary.Read(r, order, &v); err != nil {
			return 0, err
		}
		return uint32(v), nil
	case 16:
		var v uint16
		if err := binary.Read(r, order, &v); err != nil {
			return 0, err
		}
		return uint32(v), nil
	case 32:
		var v uint32
		if err := binary.Read(r, order, &v); err != nil {
			return 0, err
		}
		return v, nil
	default:
		return 0, rfberr.UnsupportedPixelFormat("bitsPerPixel %d not 8/16/32", pf.BitsPerPixel)
	}
}

// colorFromPixel extracts RGB from a pixel word per PixelFormat §4.3:
// r = (P >> redShift) & redMax, and so on, written verbatim.
func colorFromPixel(pixel uint32, pf PixelFormat) RGB {
	return RGB{
		R: uint8((pixel >> pf.RedShift) & uint32(pf.RedMax)),
		G: uint8((pixel >> pf.GreenShift) & uint32(pf.GreenMax)),
		B: uint8((pixel >> pf.BlueShift) & uint32(pf.BlueMax)),
	}
}

// readColor reads one pixel word from r and decodes it to RGB, grounded on
// the upstream client's ReadColor helper.
func readColor(r io.Reader, pf PixelFormat) (RGB, error) {
	pixel, err := readPixel(r, pf)
	if err != nil {
		return RGB{}, err
	}
	return colorFromPixel(pixel, pf), nil
}
