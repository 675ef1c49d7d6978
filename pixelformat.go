package rfb

import (
	"encoding/binary"
	"fmt"
	"io"
)

// pixelFormatWireSize is the on-the-wire size of a PixelFormat record, per
// RFC 6143 §7.4.
const pixelFormatWireSize = 16

// PixelFormat describes how a server encodes one pixel, per RFC 6143 §7.4.
// It is established once by ServerInit and may be replaced exactly once by
// the client issuing SetPixelFormat; every decoder reads the PixelFormat
// active at the time it runs.
type PixelFormat struct {
	BitsPerPixel uint8
	Depth        uint8
	BigEndian    uint8
	TrueColor    uint8
	RedMax       uint16
	GreenMax     uint16
	BlueMax      uint16
	RedShift     uint8
	GreenShift   uint8
	BlueShift    uint8
	_            [3]byte // padding
}

// NewPixelFormat32 returns a 32-bit true-color little-endian ARGB8888
// format, grounded on the upstream client's NewPixelFormat(32). The
// handshake does not send it: SetPixelFormat echoes the server's own
// ServerInit format.
func NewPixelFormat32() PixelFormat {
	return PixelFormat{
		BitsPerPixel: 32,
		Depth:        24,
		BigEndian:    0,
		TrueColor:    1,
		RedMax:       255,
		GreenMax:     255,
		BlueMax:      255,
		RedShift:     16,
		GreenShift:   8,
		BlueShift:    0,
	}
}

func (pf PixelFormat) order() binary.ByteOrder {
	if pf.BigEndian != 0 {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// bytesPerPixel returns BitsPerPixel/8; the engine only fully decodes 32.
func (pf PixelFormat) bytesPerPixel() int {
	return int(pf.BitsPerPixel) / 8
}

func (pf PixelFormat) String() string {
	return fmt.Sprintf("{bpp:%d depth:%d bigEndian:%d trueColor:%d redMax:%d greenMax:%d blueMax:%d redShift:%d greenShift:%d blueShift:%d}",
		pf.BitsPerPixel, pf.Depth, pf.BigEndian, pf.TrueColor, pf.RedMax, pf.GreenMax, pf.BlueMax, pf.RedShift, pf.GreenShift, pf.BlueShift)
}

func readPixelFormat(r io.Reader) (PixelFormat, error) {
	var pf PixelFormat
	if err := binary.Read(r, binary.BigEndian, &pf); err != nil {
		return PixelFormat{}, err
	}
	return pf, nil
}

func writePixelFormat(w io.Writer, pf PixelFormat) error {
	return binary.Write(w, binary.BigEndian, &pf)
}
