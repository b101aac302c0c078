package surface

import "math"

// BlendMode selects the per-channel compositing formula used by fills.
type BlendMode int

const (
	// BlendSourceOver replaces the destination with the source, weighted
	// by opacity. Plain alpha compositing.
	BlendSourceOver BlendMode = iota

	// BlendScreen inverts, multiplies, and inverts again: the result is
	// always at least as bright as the destination. Used for light washes.
	BlendScreen

	// BlendMultiply multiplies the channels: the result is always at most
	// as bright as the destination. Used for dark washes.
	BlendMultiply

	// BlendOverlay multiplies dark destinations and screens bright ones,
	// increasing contrast toward the source color.
	BlendOverlay
)

// blendChannel computes one output channel. dst and src are in [0, 255];
// opacity scales how far the blended value pulls away from the destination.
func blendChannel(dst, src, opacity float64, mode BlendMode) uint8 {
	d := dst / 255
	s := src / 255

	var r float64
	switch mode {
	case BlendScreen:
		r = 1 - (1-d)*(1-s)
	case BlendMultiply:
		r = d * s
	case BlendOverlay:
		if d < 0.5 {
			r = 2 * d * s
		} else {
			r = 1 - 2*(1-d)*(1-s)
		}
	default:
		r = s
	}

	out := (d + (r-d)*opacity) * 255
	return clamp8(out)
}

// clamp8 rounds and clamps a channel value to [0, 255]. Values past 255
// saturate; they never wrap.
func clamp8(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(math.Round(v))
}
