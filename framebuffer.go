package rfb

import (
	"image"
	"image/color"
	"image/draw"
)

// Framebuffer is a width x height mirror of the remote display, held as
// 32-bit RGB pixels with opaque alpha. It is created once from the
// dimensions carried in ServerInit and mutated only by rectangle decoders
// on the receive path; the protocol engine is its sole owner.
//
// Grounded on the upstream client's RGBImage/VncCanvas, generalized to
// wrap a standard image.RGBA so decoders can draw into it with the
// image/draw vocabulary (Set, SubImage) instead of a bespoke pixel buffer.
type Framebuffer struct {
	img *image.RGBA
}

// NewFramebuffer creates a framebuffer of the given size, filled with
// opaque white, matching resize()'s fill color in §4.2.
func NewFramebuffer(width, height int) *Framebuffer {
	fb := &Framebuffer{}
	fb.Resize(width, height)
	return fb
}

// Width returns the framebuffer's width in pixels.
func (fb *Framebuffer) Width() int { return fb.img.Bounds().Dx() }

// Height returns the framebuffer's height in pixels.
func (fb *Framebuffer) Height() int { return fb.img.Bounds().Dy() }

// Resize reallocates the framebuffer to width x height, filling it with
// opaque white. It emits no notification; the engine reports the
// ServerInit size through Handler.OnFramebufferSize during the handshake.
func (fb *Framebuffer) Resize(width, height int) {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	white := color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	draw.Draw(img, img.Bounds(), &image.Uniform{C: white}, image.Point{}, draw.Src)
	fb.img = img
}

// Pixel returns the color at (x, y). Coordinates outside [0,W)x[0,H) are
// invalid per the dimension law (§8) and return the zero RGB.
func (fb *Framebuffer) Pixel(x, y int) RGB {
	if !(image.Point{X: x, Y: y}.In(fb.img.Bounds())) {
		return RGB{}
	}
	c := fb.img.RGBAAt(x, y)
	return RGB{R: c.R, G: c.G, B: c.B}
}

// PutPixel writes one pixel. Out-of-bounds writes are silently dropped —
// decoders are expected to keep rectangles within framebuffer bounds, and
// a defensive drop here is cheaper than a panic mid-decode.
func (fb *Framebuffer) PutPixel(x, y int, c RGB) {
	if !(image.Point{X: x, Y: y}.In(fb.img.Bounds())) {
		return
	}
	fb.img.SetRGBA(x, y, color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff})
}

// Image exposes the framebuffer's backing image as a draw.Image so
// decoders can use image/draw and image.Image.Set directly instead of
// going through PutPixel pixel by pixel.
func (fb *Framebuffer) Image() draw.Image { return fb.img }

// Snapshot returns an independent copy of the framebuffer's current
// contents, safe to retain after the engine mutates the live buffer.
func (fb *Framebuffer) Snapshot() *image.RGBA {
	cp := image.NewRGBA(fb.img.Bounds())
	copy(cp.Pix, fb.img.Pix)
	return cp
}
