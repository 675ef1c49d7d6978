package rfb

// Handler is the event surface the engine drives synchronously on its own
// executor (§5): every notification below is delivered inline from inside
// Attach/Serve, in the order the corresponding wire events were processed.
// Implementations must not block or call back into the Engine.
//
// Grounded on the original Qt client's signals (socketChanged,
// protocolVersionChanged, securityTypeChanged, framebufferSizeChanged,
// imageChanged, connectionStateChanged), generalized from Qt slots into a
// plain interface the way the upstream Go client generalizes server
// notifications into ClientHandler/SecurityHandler.
type Handler interface {
	// OnConnectionState reports transport connect/disconnect.
	OnConnectionState(connected bool)
	// OnProtocolVersion reports the version the server offered in its
	// greeting; the client's own reply is always 3.3.
	OnProtocolVersion(v ProtocolVersion)
	// OnSecurityType reports the security type the server selected.
	OnSecurityType(t SecurityType)
	// OnFramebufferSize reports the framebuffer's current dimensions,
	// fired once after ServerInit and again on any resize.
	OnFramebufferSize(width, height int)
	// OnImageChanged reports that the rectangle (x, y, width, height) of
	// the framebuffer changed. It is contained in [0,W)x[0,H) per the
	// dimension law and fires in wire order for rectangles within one
	// FramebufferUpdate.
	OnImageChanged(x, y, width, height int)
}

// NoOpHandler implements Handler with no-op methods, useful as an
// embeddable base for callers that only care about a subset of events.
type NoOpHandler struct{}

func (NoOpHandler) OnConnectionState(bool)            {}
func (NoOpHandler) OnProtocolVersion(ProtocolVersion) {}
func (NoOpHandler) OnSecurityType(SecurityType)       {}
func (NoOpHandler) OnFramebufferSize(int, int)        {}
func (NoOpHandler) OnImageChanged(int, int, int, int) {}
