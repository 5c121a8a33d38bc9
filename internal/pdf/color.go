package pdf

import "fmt"

// ColorHex converts annotation color components to a "#rrggbb" string.
// PDF colors may carry one (gray), three (RGB) or four (CMYK) components in
// [0, 1]; anything else yields an empty string, meaning "no color".
func ColorHex(components []float64) string {
	var r, g, b float64

	switch len(components) {
	case 1:
		r, g, b = components[0], components[0], components[0]
	case 3:
		r, g, b = components[0], components[1], components[2]
	case 4:
		c, m, y, k := components[0], components[1], components[2], components[3]
		r = (1 - c) * (1 - k)
		g = (1 - m) * (1 - k)
		b = (1 - y) * (1 - k)
	default:
		return ""
	}

	return fmt.Sprintf("#%02x%02x%02x", channelByte(r), channelByte(g), channelByte(b))
}

func channelByte(v float64) uint8 {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	return uint8(v*255 + 0.5)
}
