package rfb

import (
	"io"

	"github.com/soramimi/rfbclient/rfberr"
)

// negotiateSecurity runs the version-3.3-style security step: the server
// unilaterally announces a 4-byte security type (RFC 6143 §7.1.2, as
// always exercised here since this engine always echoes 3.3 — see
// protocol.go's wireBytes). Type 0 carries a failure reason string and
// ends the connection; any type other than None is reported to the
// handler and then rejected, since only None is driven to completion
// (SPEC_FULL.md §10 Non-goals).
func negotiateSecurity(t io.Reader, h Handler) (SecurityType, error) {
	raw, err := readUint32(t)
	if err != nil {
		return SecurityTypeUnknown, rfberr.TransportClosed("reading security type: %v", err)
	}
	secType := SecurityType(raw)
	h.OnSecurityType(secType)

	if secType == SecurityTypeInvalid {
		reason, err := readReasonString(t)
		if err != nil {
			return secType, rfberr.TransportClosed("reading failure reason: %v", err)
		}
		return secType, rfberr.SecurityFailure("server refused connection: %s", reason)
	}
	if secType != SecurityTypeNone {
		return secType, rfberr.SecurityFailure("unsupported security type %s", secType)
	}
	return secType, nil
}

// readReasonString reads a 4-byte length-prefixed string, the shape RFB
// uses for every human-readable failure reason (§4.2, §4.3).
func readReasonString(t io.Reader) (string, error) {
	n, err := readUint32(t)
	if err != nil {
		return "", err
	}
	b, err := readBytes(t, int(n))
	if err != nil {
		return "", err
	}
	return string(b), nil
}
