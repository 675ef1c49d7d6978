package rfb

import (
	"io"

	"github.com/soramimi/rfbclient/rfberr"
)

// decodeContext bundles the collaborators a rectangle decoder needs: the
// transport to read raw bytes from, the framebuffer to paint into, the
// negotiated pixel format, and the persistent compression state that
// must survive across rectangles and FramebufferUpdates (§2.4). t is
// narrowed to io.Reader since decoding never writes back to the
// transport.
type decodeContext struct {
	t     io.Reader
	fb    *Framebuffer
	pf    PixelFormat
	zrle  *zlibStream
	tight *zlibStreamPool
}

// decoder decodes one rectangle's worth of encoded pixel data into fb at
// rect's bounds. Implementations must consume exactly the bytes the wire
// format defines for that rectangle, since the message stream is not
// length-prefixed at the rectangle boundary.
type decoder interface {
	decode(ctx *decodeContext, rect Rectangle) error
}

// decoderFor dispatches on the encoding tag a rectangle header announced
// (§4.5). An unrecognized tag is recoverable, not fatal: §4.4's
// conservative policy is to discard the update in progress and request a
// full refresh rather than guess at an unknown wire shape or kill the
// connection.
func decoderFor(enc EncodingType) (decoder, error) {
	switch enc {
	case EncodingRaw:
		return rawDecoder{}, nil
	case EncodingHextile:
		return hextileDecoder{}, nil
	case EncodingZRLE:
		return zrleDecoder{}, nil
	case EncodingTight:
		return tightDecoder{}, nil
	default:
		return nil, rfberr.DecoderError("unsupported rectangle encoding %d", enc)
	}
}
