// Package rfb implements the client side of the Remote Framebuffer (RFB)
// protocol, commonly known as VNC.
//
// It drives the version/security handshake, maintains a pixel framebuffer
// mirror of the remote display, decodes incremental rectangle updates in
// the Raw, Hextile, ZRLE and Tight encodings, and forwards keyboard and
// pointer events back to the server. The transport is any Transport (an
// io.ReadWriteCloser with SetReadDeadline, which net.Conn satisfies) the
// host supplies; the engine never dials a connection itself, and it
// never owns a display widget — callers observe framebuffer changes
// through a Handler.
package rfb
