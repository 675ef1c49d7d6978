package rfb

import "github.com/soramimi/rfbclient/rfberr"

// Pointer button bits for PointerEvent's mask (§4.9), one bit per
// button, low bit first.
const (
	ButtonLeft      uint8 = 1 << 0
	ButtonMiddle    uint8 = 1 << 1
	ButtonRight     uint8 = 1 << 2
	ButtonWheelUp   uint8 = 1 << 3
	ButtonWheelDown uint8 = 1 << 4
)

// sendKeysym forwards one KeyEvent message for an already-resolved
// keysym.
func sendKeysym(t Transport, keysym uint32, down bool) error {
	return writeKeyEvent(t, keysym, down)
}

// sendKeyRune resolves r to a keysym via KeysymForRune and sends a
// down/up KeyEvent pair.
func sendKeyRune(t Transport, r rune) error {
	keysym, ok := KeysymForRune(r)
	if !ok {
		return rfberr.ProtocolViolation("rune %q has no Latin-1 keysym", r)
	}
	if err := sendKeysym(t, keysym, true); err != nil {
		return err
	}
	return sendKeysym(t, keysym, false)
}

// sendKeyNamed resolves k via KeysymForKey and sends a down/up pair.
func sendKeyNamed(t Transport, k Key) error {
	keysym, ok := KeysymForKey(k)
	if !ok {
		return rfberr.ProtocolViolation("key %v has no keysym mapping", k)
	}
	if err := sendKeysym(t, keysym, true); err != nil {
		return err
	}
	return sendKeysym(t, keysym, false)
}

// sendPointer forwards one PointerEvent with the given button mask and
// absolute framebuffer coordinates.
func sendPointer(t Transport, mask uint8, x, y uint16) error {
	return writePointerEvent(t, mask, x, y)
}
