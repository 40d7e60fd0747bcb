package render

import "image"

// composite draws the straight-alpha src onto the premultiplied dst with its
// top-left corner at origin.
func composite(dst *image.RGBA, src *image.NRGBA, origin image.Point, mode Blend) {
	sb := src.Bounds()
	area := image.Rectangle{Min: origin, Max: origin.Add(sb.Size())}.Intersect(dst.Bounds())
	if area.Empty() {
		return
	}
	for y := area.Min.Y; y < area.Max.Y; y++ {
		si := src.PixOffset(sb.Min.X+area.Min.X-origin.X, sb.Min.Y+y-origin.Y)
		di := dst.PixOffset(area.Min.X, y)
		for x := area.Min.X; x < area.Max.X; x++ {
			if src.Pix[si+3] != 0 {
				blendPixel(dst.Pix[di:di+4:di+4], src.Pix[si:si+4:si+4], mode)
			}
			si += 4
			di += 4
		}
	}
}

// blendPixel mixes one straight-alpha source pixel s into the premultiplied
// destination pixel d.
func blendPixel(d, s []uint8, mode Blend) {
	as := float64(s[3]) / 255
	ab := float64(d[3]) / 255

	if mode == BlendAdd {
		for c := 0; c < 3; c++ {
			d[c] = toByte(float64(s[c])/255*as + float64(d[c])/255)
		}
		d[3] = toByte(as + ab)
		return
	}

	for c := 0; c < 3; c++ {
		cs := float64(s[c]) / 255
		var cb float64
		if ab > 0 {
			cb = float64(d[c]) / 255 / ab
		}
		mixed := cs
		if mode != BlendNormal {
			mixed = (1-ab)*cs + ab*blendChannel(mode, cb, cs)
		}
		d[c] = toByte(as*mixed + ab*cb*(1-as))
	}
	d[3] = toByte(as + ab*(1-as))
}

// blendChannel is the separable blend function B(backdrop, source).
func blendChannel(mode Blend, cb, cs float64) float64 {
	switch mode {
	case BlendScreen:
		return cb + cs - cb*cs
	case BlendOverlay:
		if cb <= 0.5 {
			return 2 * cb * cs
		}
		return 1 - 2*(1-cb)*(1-cs)
	default:
		return cs
	}
}

func toByte(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
