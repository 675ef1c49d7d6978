package rfb

import (
	"fmt"

	"github.com/soramimi/rfbclient/rfberr"
)

// supportedEncodings lists the encodings this engine advertises, most
// preferred first (§4.10's SetEncodings). CopyRect, RRE/CoRRE and the
// pseudo-encodings are intentionally absent (SPEC_FULL.md §10).
var supportedEncodings = []EncodingType{
	EncodingTight,
	EncodingZRLE,
	EncodingHextile,
	EncodingRaw,
}

// ServerInit carries the handshake's final announcement: the
// framebuffer's initial geometry and pixel format, and the remote
// desktop's name (§4.3).
type ServerInit struct {
	Width, Height uint16
	PixelFormat   PixelFormat
	Name          string
}

// readVersionLine reads the server's 12-byte "RFB xxx.yyy\n" greeting and
// classifies it, without acting on it — the client always echoes 3.3
// regardless of what's offered (protocol.go's wireBytes).
func readVersionLine(t Transport) (ProtocolVersion, error) {
	b, err := readBytes(t, 12)
	if err != nil {
		return ProtocolVersionUnknown, rfberr.TransportClosed("reading protocol version: %v", err)
	}
	var major, minor int
	if _, err := fmt.Sscanf(string(b), "RFB %d.%d\n", &major, &minor); err != nil {
		return ProtocolVersionUnknown, rfberr.ProtocolViolation("malformed version line %q", b)
	}
	switch {
	case major == 3 && minor >= 8:
		return ProtocolVersion38, nil
	case major == 3 && minor == 7:
		return ProtocolVersion37, nil
	case major == 3:
		return ProtocolVersion33, nil
	default:
		return ProtocolVersionUnknown, rfberr.ProtocolViolation("unsupported protocol major version %d", major)
	}
}

// writeVersionLine echoes this engine's fixed 3.3 greeting.
func writeVersionLine(t Transport) error {
	b := ProtocolVersion33.wireBytes()
	_, err := t.Write(b[:])
	return err
}

// writeClientInit sends the 1-byte shared-flag message that follows
// security negotiation (§4.2). shared requests the server not drop other
// clients already attached.
func writeClientInit(t Transport, shared bool) error {
	flag := uint8(0)
	if shared {
		flag = 1
	}
	return writeUint8(t, flag)
}

// readServerInit parses the handshake's final message (§4.3).
func readServerInit(t Transport) (ServerInit, error) {
	var si ServerInit
	w, err := readUint16(t)
	if err != nil {
		return si, rfberr.TransportClosed("reading framebuffer width: %v", err)
	}
	h, err := readUint16(t)
	if err != nil {
		return si, rfberr.TransportClosed("reading framebuffer height: %v", err)
	}
	pf, err := readPixelFormat(t)
	if err != nil {
		return si, rfberr.TransportClosed("reading server pixel format: %v", err)
	}
	nameLen, err := readUint32(t)
	if err != nil {
		return si, rfberr.TransportClosed("reading desktop name length: %v", err)
	}
	nameBytes, err := readBytes(t, int(nameLen))
	if err != nil {
		return si, rfberr.TransportClosed("reading desktop name: %v", err)
	}
	si.Width, si.Height, si.PixelFormat, si.Name = w, h, pf, string(nameBytes)
	return si, nil
}

// handshake drives the full version/security/init sequence (§3, §4.1-4.3)
// and leaves the engine ready to enter the FramebufferUpdate loop with its
// encoding list already announced and its pixel format echoed back to the
// server unchanged (§4.4 step 5) — the server's own ServerInit.PixelFormat,
// not a client-preferred one, since every decoder reads whatever format is
// actually on the wire.
func handshake(t Transport, h Handler) (ServerInit, error) {
	v, err := readVersionLine(t)
	if err != nil {
		return ServerInit{}, err
	}
	h.OnProtocolVersion(v)
	if err := writeVersionLine(t); err != nil {
		return ServerInit{}, rfberr.TransportClosed("echoing protocol version: %v", err)
	}

	if _, err := negotiateSecurity(t, h); err != nil {
		return ServerInit{}, err
	}

	if err := writeClientInit(t, true); err != nil {
		return ServerInit{}, rfberr.TransportClosed("sending ClientInit: %v", err)
	}

	si, err := readServerInit(t)
	if err != nil {
		return ServerInit{}, err
	}
	h.OnFramebufferSize(int(si.Width), int(si.Height))

	if err := writeSetPixelFormat(t, si.PixelFormat); err != nil {
		return si, rfberr.TransportClosed("sending SetPixelFormat: %v", err)
	}
	if err := writeSetEncodings(t, supportedEncodings); err != nil {
		return si, rfberr.TransportClosed("sending SetEncodings: %v", err)
	}
	if err := writeFramebufferUpdateRequest(t, false, 0, 0, si.Width, si.Height); err != nil {
		return si, rfberr.TransportClosed("sending initial FramebufferUpdateRequest: %v", err)
	}
	return si, nil
}
