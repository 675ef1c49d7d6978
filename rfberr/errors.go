// Package rfberr defines the error taxonomy the protocol engine raises:
// TransportClosed, ProtocolViolation, DecoderError, SecurityFailure, and
// UnsupportedPixelFormat. Call sites wrap one of the sentinel Kind values
// with context so callers can branch with errors.Is while still getting a
// useful message, the same role the upstream client's NewVNCError/Errorf
// helpers played, generalized into five distinguishable kinds.
package rfberr

import (
	"errors"
	"fmt"
)

// Kind is a sentinel identifying one of the five error categories the
// engine recognizes. Compare with errors.Is(err, rfberr.KindDecoderError).
type Kind error

var (
	KindTransportClosed        Kind = errors.New("rfb: transport closed")
	KindProtocolViolation      Kind = errors.New("rfb: protocol violation")
	KindDecoderError           Kind = errors.New("rfb: decoder error")
	KindSecurityFailure        Kind = errors.New("rfb: security failure")
	KindUnsupportedPixelFormat Kind = errors.New("rfb: unsupported pixel format")
)

// wrapped pairs a Kind with a specific message, so errors.Is still matches
// the sentinel while the message carries the concrete detail.
type wrapped struct {
	kind Kind
	msg  string
}

func (w *wrapped) Error() string { return w.msg }
func (w *wrapped) Unwrap() error { return w.kind }

func newf(kind Kind, format string, args ...interface{}) error {
	return &wrapped{kind: kind, msg: fmt.Sprintf(format, args...)}
}

// TransportClosed reports that the peer closed the connection or the host
// called Detach.
func TransportClosed(format string, args ...interface{}) error {
	return newf(KindTransportClosed, format, args...)
}

// ProtocolViolation reports a malformed or unrecognized message that
// leaves the connection in an unrecoverable state.
func ProtocolViolation(format string, args ...interface{}) error {
	return newf(KindProtocolViolation, format, args...)
}

// DecoderError reports a recoverable failure decoding one rectangle; the
// caller should discard the rectangle and request a full refresh.
func DecoderError(format string, args ...interface{}) error {
	return newf(KindDecoderError, format, args...)
}

// SecurityFailure reports an invalid or rejected security negotiation.
func SecurityFailure(format string, args ...interface{}) error {
	return newf(KindSecurityFailure, format, args...)
}

// UnsupportedPixelFormat reports a pixel format the active decoder cannot
// handle (a bits-per-pixel other than 8, 16 or 32 when reading a pixel word).
func UnsupportedPixelFormat(format string, args ...interface{}) error {
	return newf(KindUnsupportedPixelFormat, format, args...)
}
