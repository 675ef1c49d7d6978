package rfb

// ProtocolVersion is the negotiated RFB wire version, set exactly once
// during the handshake.
type ProtocolVersion int

const (
	ProtocolVersionUnknown ProtocolVersion = iota
	ProtocolVersion33
	ProtocolVersion37
	ProtocolVersion38
)

func (v ProtocolVersion) String() string {
	switch v {
	case ProtocolVersion33:
		return "RFB 003.003"
	case ProtocolVersion37:
		return "RFB 003.007"
	case ProtocolVersion38:
		return "RFB 003.008"
	default:
		return "unknown"
	}
}

// wireBytes returns the 12-byte version string the client echoes back to
// the server. Per SPEC_FULL.md §9 open question 1 (confirmed against the
// original Qt client), this engine always echoes 3.3 regardless of what
// the server offered — the handshake downgrades rather than negotiating
// up, intentionally, for back-compat with the widest range of servers.
func (v ProtocolVersion) wireBytes() [12]byte {
	var b [12]byte
	copy(b[:], "RFB 003.003\n")
	return b
}

// SecurityType is one of the RFB security negotiation outcomes, per
// RFC 6143 §7.1.2 and the Tight/VeNCrypt extensions. Only None is
// actually driven to completion by this engine; the others are named so
// the negotiation step and the host callback can report what the server
// offered even though the engine refuses to proceed with them.
type SecurityType int8

const (
	SecurityTypeUnknown      SecurityType = -1
	SecurityTypeInvalid      SecurityType = 0
	SecurityTypeNone         SecurityType = 1
	SecurityTypeVncAuth      SecurityType = 2
	SecurityTypeRA2          SecurityType = 5
	SecurityTypeRA2ne        SecurityType = 6
	SecurityTypeTight        SecurityType = 16
	SecurityTypeUltra        SecurityType = 17
	SecurityTypeTLS          SecurityType = 18
	SecurityTypeVeNCrypt     SecurityType = 19
	SecurityTypeSASL         SecurityType = 20
	SecurityTypeMD5          SecurityType = 21
	SecurityTypeColinDeanXvp SecurityType = 22
)

func (t SecurityType) String() string {
	switch t {
	case SecurityTypeInvalid:
		return "Invalid"
	case SecurityTypeNone:
		return "None"
	case SecurityTypeVncAuth:
		return "VncAuth"
	case SecurityTypeRA2:
		return "RA2"
	case SecurityTypeRA2ne:
		return "RA2ne"
	case SecurityTypeTight:
		return "Tight"
	case SecurityTypeUltra:
		return "Ultra"
	case SecurityTypeTLS:
		return "TLS"
	case SecurityTypeVeNCrypt:
		return "VeNCrypt"
	case SecurityTypeSASL:
		return "SASL"
	case SecurityTypeMD5:
		return "MD5"
	case SecurityTypeColinDeanXvp:
		return "ColinDeanXvp"
	default:
		return "Unknown"
	}
}

// HandshakeState tracks progress through the multi-stage handshake, per
// §3: AwaitingVersion -> AwaitingSecurity -> AwaitingServerInit -> Ready,
// with Failed reachable from any state.
type HandshakeState int

const (
	StateAwaitingVersion HandshakeState = iota
	StateAwaitingSecurity
	StateAwaitingSecurityResult
	StateAwaitingServerInit
	StateReady
	StateFailed
)

func (s HandshakeState) String() string {
	switch s {
	case StateAwaitingVersion:
		return "AwaitingVersion"
	case StateAwaitingSecurity:
		return "AwaitingSecurity"
	case StateAwaitingSecurityResult:
		return "AwaitingSecurityResult"
	case StateAwaitingServerInit:
		return "AwaitingServerInit"
	case StateReady:
		return "Ready"
	case StateFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}
