package rfb

import (
	"io"

	"github.com/soramimi/rfbclient/rfberr"
)

// Client-to-server message type tags, per RFC 6143 §7.5.
const (
	msgSetPixelFormat         uint8 = 0
	msgSetEncodings           uint8 = 2
	msgFramebufferUpdateRequest uint8 = 3
	msgKeyEvent               uint8 = 4
	msgPointerEvent           uint8 = 5
)

// Server-to-client message type tags, per RFC 6143 §7.6.
const (
	msgFramebufferUpdate  uint8 = 0
	msgSetColorMapEntries uint8 = 1
	msgBell               uint8 = 2
	msgServerCutText      uint8 = 3
)

// writeSetPixelFormat sends message type 0: 1B type, 3B padding, 16B
// PixelFormat (§4.10).
func writeSetPixelFormat(w io.Writer, pf PixelFormat) error {
	if err := writeUint8(w, msgSetPixelFormat); err != nil {
		return err
	}
	if _, err := w.Write(make([]byte, 3)); err != nil {
		return err
	}
	return writePixelFormat(w, pf)
}

// writeSetEncodings sends message type 2: 1B type, 1B padding, 2B count,
// then count x 4B signed encoding tags, in preference order (§4.10).
func writeSetEncodings(w io.Writer, encs []EncodingType) error {
	if err := writeUint8(w, msgSetEncodings); err != nil {
		return err
	}
	if _, err := w.Write([]byte{0}); err != nil {
		return err
	}
	if err := writeUint16(w, uint16(len(encs))); err != nil {
		return err
	}
	for _, e := range encs {
		if err := writeInt32(w, int32(e)); err != nil {
			return err
		}
	}
	return nil
}

// writeFramebufferUpdateRequest sends message type 3 (§4.10).
func writeFramebufferUpdateRequest(w io.Writer, incremental bool, x, y, width, height uint16) error {
	if err := writeUint8(w, msgFramebufferUpdateRequest); err != nil {
		return err
	}
	inc := uint8(0)
	if incremental {
		inc = 1
	}
	if err := writeUint8(w, inc); err != nil {
		return err
	}
	for _, v := range []uint16{x, y, width, height} {
		if err := writeUint16(w, v); err != nil {
			return err
		}
	}
	return nil
}

// writeKeyEvent sends message type 4: 1B type, 1B downFlag, 2B padding,
// 4B keysym (§4.9).
func writeKeyEvent(w io.Writer, keysym uint32, down bool) error {
	if err := writeUint8(w, msgKeyEvent); err != nil {
		return err
	}
	flag := uint8(0)
	if down {
		flag = 1
	}
	if err := writeUint8(w, flag); err != nil {
		return err
	}
	if _, err := w.Write(make([]byte, 2)); err != nil {
		return err
	}
	return writeUint32(w, keysym)
}

// writePointerEvent sends message type 5: 1B type, 1B button mask, 2B x,
// 2B y (§4.9).
func writePointerEvent(w io.Writer, mask uint8, x, y uint16) error {
	if err := writeUint8(w, msgPointerEvent); err != nil {
		return err
	}
	if err := writeUint8(w, mask); err != nil {
		return err
	}
	if err := writeUint16(w, x); err != nil {
		return err
	}
	return writeUint16(w, y)
}

// skipServerCutText discards a ServerCutText payload (§4.4: may be logged
// and skipped).
func skipServerCutText(r io.Reader) error {
	if _, err := readBytes(r, 3); err != nil { // padding
		return err
	}
	length, err := readUint32(r)
	if err != nil {
		return err
	}
	_, err = readBytes(r, int(length))
	return err
}

// errUnhandledMessage reports that message type mt has no handler. Per
// §4.4's conservative policy, only FramebufferUpdate, Bell and
// ServerCutText are recognized; anything else is a protocol violation
// since its payload length is message-defined and cannot be skipped
// safely (SPEC_FULL.md §4.4).
func errUnhandledMessage(mt uint8) error {
	return rfberr.ProtocolViolation("unhandled server message type %d", mt)
}
