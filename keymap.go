package rfb

// Key names the non-printable keys the engine can forward as X11 keysyms
// (§4.9's KeyEvent). Printable characters go through KeysymForRune
// instead, since the Latin-1 keysym range is simply the Unicode code
// point for 0x20-0x00FF (RFC 6143 Appendix A; confirmed against the
// original Qt client's keyMap table, where every printable entry is its
// own ASCII value and only control keys need an explicit mapping).
type Key int

const (
	KeyBackSpace Key = iota
	KeyTab
	KeyReturn
	KeyEscape
	KeyDelete
	KeyInsert
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyLeft
	KeyUp
	KeyRight
	KeyDown
	KeyShiftLeft
	KeyShiftRight
	KeyControlLeft
	KeyControlRight
	KeyAltLeft
	KeyAltRight
	KeyMetaLeft
	KeyMetaRight
	KeyCapsLock
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
)

// keysyms maps each named Key to its X11 keysym value, grounded on the
// constants the original Qt client's keyMap initializes (qvncclient.cpp).
var keysyms = map[Key]uint32{
	KeyBackSpace:     0xff08,
	KeyTab:           0xff09,
	KeyReturn:        0xff0d,
	KeyEscape:        0xff1b,
	KeyDelete:        0xffff,
	KeyInsert:        0xff63,
	KeyHome:          0xff50,
	KeyEnd:           0xff57,
	KeyPageUp:        0xff55,
	KeyPageDown:      0xff56,
	KeyLeft:          0xff51,
	KeyUp:            0xff52,
	KeyRight:         0xff53,
	KeyDown:          0xff54,
	KeyShiftLeft:     0xffe1,
	KeyShiftRight:    0xffe2,
	KeyControlLeft:   0xffe3,
	KeyControlRight:  0xffe4,
	KeyAltLeft:       0xffe9,
	KeyAltRight:      0xffea,
	KeyMetaLeft:      0xffe7,
	KeyMetaRight:     0xffe8,
	KeyCapsLock:      0xffe5,
	KeyF1:            0xffbe,
	KeyF2:            0xffbf,
	KeyF3:            0xffc0,
	KeyF4:            0xffc1,
	KeyF5:            0xffc2,
	KeyF6:            0xffc3,
	KeyF7:            0xffc4,
	KeyF8:            0xffc5,
	KeyF9:            0xffc6,
	KeyF10:           0xffc7,
	KeyF11:           0xffc8,
	KeyF12:           0xffc9,
}

// KeysymForKey resolves a named Key to its X11 keysym, or (0, false) if
// unmapped.
func KeysymForKey(k Key) (uint32, bool) {
	v, ok := keysyms[k]
	return v, ok
}

// KeysymForRune resolves a printable character to its X11 keysym. The
// Latin-1 block (U+0020-U+00FF) maps directly onto the matching keysym
// value; characters outside it are not mapped and return (0, false).
func KeysymForRune(r rune) (uint32, bool) {
	if r >= 0x20 && r <= 0xff {
		return uint32(r), true
	}
	return 0, false
}
