package rfb

import (
	"errors"
	"image"
	"time"

	"github.com/soramimi/rfbclient/logger"
	"github.com/soramimi/rfbclient/rfberr"
)

// Config configures an Engine before Attach. Handler and Logger may be
// left nil; a NoOpHandler and the package-level discard logger are used
// respectively.
type Config struct {
	Handler Handler
	Logger  logger.Logger
	// ReadTimeout bounds how long Serve waits for the next byte of a
	// FramebufferUpdate before treating the connection as stalled and
	// forcing a full refresh (§5). Zero disables the timeout.
	ReadTimeout time.Duration
}

// Engine is the protocol state machine: one handshake, one framebuffer
// mirror, one persistent set of decompression contexts, driven by a
// single goroutine calling Serve. It borrows its Transport rather than
// owning it (§1, §5) and never touches a display surface directly —
// callers observe it through Handler and read it back through
// Snapshot.
type Engine struct {
	t       Transport
	handler Handler
	log     logger.Logger

	readTimeout time.Duration

	fb   *Framebuffer
	pf   PixelFormat
	zrle zlibStream
	tight zlibStreamPool

	state HandshakeState
}

// NewEngine constructs an Engine in its initial, unattached state.
func NewEngine(cfg Config) *Engine {
	h := cfg.Handler
	if h == nil {
		h = NoOpHandler{}
	}
	l := cfg.Logger
	if l == nil {
		l = logger.Discard()
	}
	return &Engine{
		handler:     h,
		log:         l,
		readTimeout: cfg.ReadTimeout,
		state:       StateAwaitingVersion,
	}
}

// Attach runs the handshake against t and, on success, leaves the
// engine in StateReady with its framebuffer sized and Serve ready to be
// called. It does not take ownership of t; Detach/Close are the
// caller's responsibility.
func (e *Engine) Attach(t Transport) error {
	e.t = t
	e.zrle.reset()
	e.tight.resetAll()

	si, err := handshake(t, e.handler)
	if err != nil {
		e.state = StateFailed
		return err
	}

	e.pf = si.PixelFormat
	e.fb = NewFramebuffer(int(si.Width), int(si.Height))
	e.state = StateReady
	e.handler.OnConnectionState(true)
	return nil
}

// Detach closes the transport and notifies the handler. It does not
// reset the framebuffer, so Snapshot keeps returning the last known
// image after a disconnect.
func (e *Engine) Detach() error {
	e.state = StateFailed
	if e.t == nil {
		return nil
	}
	err := e.t.Close()
	e.handler.OnConnectionState(false)
	return err
}

// Serve drives the FramebufferUpdate loop until the transport errors or
// stop is closed. Each iteration reads one server message; a read
// timeout is treated as a decode stall rather than a fatal error — the
// engine logs it and requests a full (non-incremental) refresh before
// continuing, matching the original Qt client's recovery from a stalled
// update.
func (e *Engine) Serve(stop <-chan struct{}) error {
	if e.state != StateReady {
		return rfberr.ProtocolViolation("Serve called before a successful Attach")
	}
	for {
		select {
		case <-stop:
			return nil
		default:
		}

		if e.readTimeout > 0 {
			if err := e.t.SetReadDeadline(time.Now().Add(e.readTimeout)); err != nil {
				return rfberr.TransportClosed("setting read deadline: %v", err)
			}
		}

		mt, err := readUint8(e.t)
		if err != nil {
			if isTimeout(err) {
				e.log.Debugf("read timeout waiting for server message, forcing full refresh")
				if rerr := writeFramebufferUpdateRequest(e.t, false, 0, 0, uint16(e.fb.Width()), uint16(e.fb.Height())); rerr != nil {
					return rfberr.TransportClosed("requesting full refresh: %v", rerr)
				}
				continue
			}
			e.state = StateFailed
			return rfberr.TransportClosed("reading server message type: %v", err)
		}

		if err := e.dispatch(mt); err != nil {
			e.state = StateFailed
			return err
		}
	}
}

func (e *Engine) dispatch(mt uint8) error {
	switch mt {
	case msgFramebufferUpdate:
		return e.handleFramebufferUpdate()
	case msgBell:
		e.log.Debug("server rang the bell")
		return nil
	case msgServerCutText:
		if err := skipServerCutText(e.t); err != nil {
			return err
		}
		e.log.Debug("ignoring server cut text")
		return nil
	default:
		return errUnhandledMessage(mt)
	}
}

// handleFramebufferUpdate reads and applies one batch of rectangles
// (§4.4, §4.5), notifies the handler per rectangle, then requests the
// next incremental update to keep the loop self-sustaining. A rectangle
// that fails to decode is recovered rather than propagated; see
// recoverOrFail.
func (e *Engine) handleFramebufferUpdate() error {
	if _, err := readBytes(e.t, 1); err != nil { // padding
		return err
	}
	numRects, err := readUint16(e.t)
	if err != nil {
		return err
	}

	ctx := &decodeContext{t: e.t, fb: e.fb, pf: e.pf, zrle: &e.zrle, tight: &e.tight}

	for i := 0; i < int(numRects); i++ {
		rect, err := readRectangleHeader(e.t)
		if err != nil {
			return err
		}
		dec, err := decoderFor(rect.Encoding)
		if err != nil {
			return e.recoverOrFail(err)
		}
		if err := dec.decode(ctx, rect); err != nil {
			return e.recoverOrFail(rfberr.DecoderError("decoding rectangle %v: %v", rect, err))
		}
		e.handler.OnImageChanged(int(rect.X), int(rect.Y), int(rect.Width), int(rect.Height))
	}

	return writeFramebufferUpdateRequest(e.t, true, 0, 0, uint16(e.fb.Width()), uint16(e.fb.Height()))
}

// recoverOrFail handles a per-rectangle failure from decoderFor or decode.
// DecoderError and UnsupportedPixelFormat (a bad compressed stream, an
// unrecognized encoding tag, a pixel depth a decoder can't read) are
// recoverable per §7: once one rectangle fails, the remaining bytes of
// this FramebufferUpdate can't be located in the stream either, so the
// whole update is discarded and a fresh non-incremental
// FramebufferUpdateRequest is issued for the entire framebuffer instead of
// failing the connection. Any other error — a closed transport, a
// violation outside decoding — is fatal and propagates to Serve.
func (e *Engine) recoverOrFail(err error) error {
	if !errors.Is(err, rfberr.KindDecoderError) && !errors.Is(err, rfberr.KindUnsupportedPixelFormat) {
		return err
	}
	e.log.Debugf("discarding framebuffer update after recoverable decode error: %v", err)
	if rerr := writeFramebufferUpdateRequest(e.t, false, 0, 0, uint16(e.fb.Width()), uint16(e.fb.Height())); rerr != nil {
		return rfberr.TransportClosed("requesting full refresh after decode error: %v", rerr)
	}
	return nil
}

// SendKeyRune forwards a printable character as a down/up KeyEvent
// pair.
func (e *Engine) SendKeyRune(r rune) error {
	if e.state != StateReady {
		return rfberr.ProtocolViolation("SendKeyRune called while not attached")
	}
	return sendKeyRune(e.t, r)
}

// SendKey forwards a named, non-printable key as a down/up KeyEvent
// pair.
func (e *Engine) SendKey(k Key) error {
	if e.state != StateReady {
		return rfberr.ProtocolViolation("SendKey called while not attached")
	}
	return sendKeyNamed(e.t, k)
}

// SendPointer forwards one PointerEvent.
func (e *Engine) SendPointer(mask uint8, x, y int) error {
	if e.state != StateReady {
		return rfberr.ProtocolViolation("SendPointer called while not attached")
	}
	return sendPointer(e.t, mask, uint16(x), uint16(y))
}

// Snapshot returns a deep copy of the current framebuffer, safe to keep
// after the engine mutates its live buffer.
func (e *Engine) Snapshot() *image.RGBA {
	return e.fb.Snapshot()
}

// State reports the engine's current handshake/serve state.
func (e *Engine) State() HandshakeState { return e.state }

type timeoutError interface {
	Timeout() bool
}

func isTimeout(err error) bool {
	te, ok := err.(timeoutError)
	return ok && te.Timeout()
}
