package rfb

import (
	"image"
	"io"
)

// EncodingType identifies an on-the-wire rectangle encoding or pseudo
// encoding, per RFC 6143 §7.7 and the Tight/TightPNG extensions.
type EncodingType int32

// Encoding tags named by this package. Only Raw, Hextile, Tight and ZRLE
// are decoded and advertised in SetEncodings. Any other tag, CopyRect and
// RRE included, can't be skipped safely, since its payload length is
// encoding-defined, so decoderFor reports it as a recoverable decode error
// (§4.4) rather than guessing at the wire shape.
const (
	EncodingRaw     EncodingType = 0
	EncodingCopyRect EncodingType = 1
	EncodingRRE     EncodingType = 2
	EncodingHextile EncodingType = 5
	EncodingTight   EncodingType = 7
	EncodingZRLE    EncodingType = 16
)

// Rectangle describes one FramebufferUpdate rectangle: its bounds in
// framebuffer coordinates and the encoding its payload uses.
type Rectangle struct {
	X, Y          uint16
	Width, Height uint16
	Encoding      EncodingType
}

// Bounds returns the rectangle as an image.Rectangle for use against the
// framebuffer's backing image.
func (r Rectangle) Bounds() image.Rectangle {
	return image.Rect(int(r.X), int(r.Y), int(r.X)+int(r.Width), int(r.Y)+int(r.Height))
}

func readRectangleHeader(br io.Reader) (Rectangle, error) {
	var rect Rectangle
	x, err := readUint16(br)
	if err != nil {
		return rect, err
	}
	y, err := readUint16(br)
	if err != nil {
		return rect, err
	}
	w, err := readUint16(br)
	if err != nil {
		return rect, err
	}
	h, err := readUint16(br)
	if err != nil {
		return rect, err
	}
	enc, err := readInt32(br)
	if err != nil {
		return rect, err
	}
	rect.X, rect.Y, rect.Width, rect.Height = x, y, w, h
	rect.Encoding = EncodingType(enc)
	return rect, nil
}
