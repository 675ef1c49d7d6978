// Package recorder captures a live session to an MJPEG AVI file by
// wrapping an rfb.Handler and pulling a framebuffer snapshot every time
// the wrapped engine reports a changed rectangle. Grounded on the
// upstream client's MJPegImageEncoder: same icza/mjpeg AviWriter, same
// jpeg.Encode-per-frame approach, generalized from a single hard-coded
// 1024x768 track into one sized from the negotiated framebuffer.
package recorder

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"strings"

	"github.com/icza/mjpeg"

	"github.com/soramimi/rfbclient"
	"github.com/soramimi/rfbclient/logger"
)

// Config controls the output file and encoding.
type Config struct {
	// Path is the destination file; a ".avi" suffix is appended if
	// missing.
	Path string
	// FrameRate is frames per second written into the AVI header.
	// Defaults to 5, matching the upstream encoder's default.
	FrameRate int32
	// Quality is the JPEG quality passed to image/jpeg; zero uses the
	// library default.
	Quality int
	Logger  logger.Logger
}

// Recorder implements rfb.Handler, forwarding every call to an inner
// handler (which may be a NoOpHandler) while additionally muxing a
// JPEG-encoded snapshot into an AVI track on every image change.
type Recorder struct {
	inner  rfb.Handler
	cfg    Config
	log    logger.Logger
	writer mjpeg.AviWriter
	width  int
	height int

	snapshot func() *image.RGBA
}

// New creates a Recorder that wraps inner (use rfb.NoOpHandler{} if the
// caller doesn't need its own callbacks) and pulls frames from snapshot,
// typically a closure over (*rfb.Engine).Snapshot.
func New(inner rfb.Handler, snapshot func() *image.RGBA, cfg Config) *Recorder {
	l := cfg.Logger
	if l == nil {
		l = logger.Discard()
	}
	if cfg.FrameRate <= 0 {
		cfg.FrameRate = 5
	}
	return &Recorder{inner: inner, cfg: cfg, log: l, snapshot: snapshot}
}

func (r *Recorder) OnConnectionState(connected bool) {
	r.inner.OnConnectionState(connected)
	if !connected {
		r.Close()
	}
}

func (r *Recorder) OnProtocolVersion(v rfb.ProtocolVersion) { r.inner.OnProtocolVersion(v) }
func (r *Recorder) OnSecurityType(t rfb.SecurityType)       { r.inner.OnSecurityType(t) }

// OnFramebufferSize (re)opens the AVI writer at the announced
// dimensions, since icza/mjpeg fixes width/height at creation time.
func (r *Recorder) OnFramebufferSize(width, height int) {
	r.inner.OnFramebufferSize(width, height)
	if r.writer != nil {
		r.Close()
	}
	path := r.cfg.Path
	if !strings.HasSuffix(path, ".avi") {
		path += ".avi"
	}
	w, err := mjpeg.New(path, int32(width), int32(height), r.cfg.FrameRate)
	if err != nil {
		r.log.Errorf("recorder: opening %s: %v", path, err)
		return
	}
	r.writer = w
	r.width, r.height = width, height
}

// OnImageChanged encodes the current framebuffer snapshot as a JPEG
// frame and appends it to the AVI track.
func (r *Recorder) OnImageChanged(x, y, width, height int) {
	r.inner.OnImageChanged(x, y, width, height)
	if r.writer == nil || r.snapshot == nil {
		return
	}
	img := r.snapshot()
	if img == nil {
		return
	}
	buf := &bytes.Buffer{}
	var opts *jpeg.Options
	if r.cfg.Quality > 0 {
		opts = &jpeg.Options{Quality: r.cfg.Quality}
	}
	if err := jpeg.Encode(buf, img, opts); err != nil {
		r.log.Errorf("recorder: encoding frame: %v", err)
		return
	}
	if err := r.writer.AddFrame(buf.Bytes()); err != nil {
		r.log.Errorf("recorder: adding frame: %v", err)
	}
}

// Close finalizes the AVI file. Safe to call multiple times.
func (r *Recorder) Close() error {
	if r.writer == nil {
		return nil
	}
	err := r.writer.Close()
	r.writer = nil
	if err != nil {
		return fmt.Errorf("recorder: closing: %w", err)
	}
	return nil
}
