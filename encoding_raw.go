package rfb

// rawDecoder implements the Raw encoding (§4.6): width*height pixels,
// row-major, each bytesPerPixel(pf) bytes wide, with no compression.
// Grounded on the upstream client's RawEncoding.Read, generalized onto
// this package's Framebuffer/PixelFormat types.
type rawDecoder struct{}

func (rawDecoder) decode(ctx *decodeContext, rect Rectangle) error {
	for y := 0; y < int(rect.Height); y++ {
		for x := 0; x < int(rect.Width); x++ {
			c, err := readColor(ctx.t, ctx.pf)
			if err != nil {
				return err
			}
			ctx.fb.PutPixel(int(rect.X)+x, int(rect.Y)+y, c)
		}
	}
	return nil
}
