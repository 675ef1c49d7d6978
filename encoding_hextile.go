package rfb

const hextileTileSize = 16

// Hextile subencoding mask bits (§4.7).
const (
	hextileRaw              = 1 << 0
	hextileBackgroundSpecified = 1 << 1
	hextileForegroundSpecified = 1 << 2
	hextileAnySubrects       = 1 << 3
	hextileSubrectsColoured  = 1 << 4
)

// hextileDecoder implements Hextile (§4.7): the rectangle is tiled into
// 16x16 blocks (the last row/column of tiles clipped to the rectangle's
// edge), each independently carrying either raw pixels or a
// background-fill plus a list of colored subrects. Background and
// foreground colors persist across tiles within one rectangle, reset at
// the start of every new rectangle — grounded on the upstream client's
// HextileEncoding.Read, which carries bg/fg as Read-local state rather
// than connection state for exactly that reason.
type hextileDecoder struct{}

func (hextileDecoder) decode(ctx *decodeContext, rect Rectangle) error {
	var background, foreground RGB

	for ty := 0; ty < int(rect.Height); ty += hextileTileSize {
		tileHeight := hextileTileSize
		if remain := int(rect.Height) - ty; remain < tileHeight {
			tileHeight = remain
		}
		for tx := 0; tx < int(rect.Width); tx += hextileTileSize {
			tileWidth := hextileTileSize
			if remain := int(rect.Width) - tx; remain < tileWidth {
				tileWidth = remain
			}

			mask, err := readUint8(ctx.t)
			if err != nil {
				return err
			}

			originX, originY := int(rect.X)+tx, int(rect.Y)+ty

			if mask&hextileRaw != 0 {
				for y := 0; y < tileHeight; y++ {
					for x := 0; x < tileWidth; x++ {
						c, err := readColor(ctx.t, ctx.pf)
						if err != nil {
							return err
						}
						ctx.fb.PutPixel(originX+x, originY+y, c)
					}
				}
				continue
			}

			if mask&hextileBackgroundSpecified != 0 {
				c, err := readColor(ctx.t, ctx.pf)
				if err != nil {
					return err
				}
				background = c
			}
			if mask&hextileForegroundSpecified != 0 {
				c, err := readColor(ctx.t, ctx.pf)
				if err != nil {
					return err
				}
				foreground = c
			}

			fillTile(ctx.fb, originX, originY, tileWidth, tileHeight, background)

			if mask&hextileAnySubrects == 0 {
				continue
			}
			count, err := readUint8(ctx.t)
			if err != nil {
				return err
			}
			colored := mask&hextileSubrectsColoured != 0
			for i := 0; i < int(count); i++ {
				color := foreground
				if colored {
					c, err := readColor(ctx.t, ctx.pf)
					if err != nil {
						return err
					}
					color = c
				}
				xy, err := readUint8(ctx.t)
				if err != nil {
					return err
				}
				wh, err := readUint8(ctx.t)
				if err != nil {
					return err
				}
				sx, sy := int(xy>>4), int(xy&0x0f)
				sw, sh := int(wh>>4)+1, int(wh&0x0f)+1
				// Draw position is clamped to the tile's real dimensions
				// (§4.6): the last tile in a row or column is routinely
				// smaller than 16x16, and a subrect near its edge is
				// expected to overrun the untruncated 16x16 grid.
				if sx >= tileWidth || sy >= tileHeight {
					continue
				}
				if sx+sw > tileWidth {
					sw = tileWidth - sx
				}
				if sy+sh > tileHeight {
					sh = tileHeight - sy
				}
				fillTile(ctx.fb, originX+sx, originY+sy, sw, sh, color)
			}
		}
	}
	return nil
}

func fillTile(fb *Framebuffer, x, y, w, h int, c RGB) {
	for dy := 0; dy < h; dy++ {
		for dx := 0; dx < w; dx++ {
			fb.PutPixel(x+dx, y+dy, c)
		}
	}
}
