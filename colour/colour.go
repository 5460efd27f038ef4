// Package colour provides the renderer's linear-RGB working colour space
// and the gamma-aware conversion to 8-bit display colour.
package colour

import "math"

// Channel is the set of floating-point types ColourRgb can be parameterized
// over. The linear working space uses float32 or float64; display colour
// uses the separate RGB8 type below rather than ColourRgb[uint8], since
// 8-bit channels don't support the same arithmetic (spec §3: "Conversion to
// 8-bit" is a distinct operation, not a component type of the same algebra).
type Channel interface {
	~float32 | ~float64
}

// ColourRgb is a linear RGB triple. T is the working precision.
type ColourRgb[T Channel] struct {
	R, G, B T
}

// New constructs a ColourRgb from three components.
func New[T Channel](r, g, b T) ColourRgb[T] {
	return ColourRgb[T]{R: r, G: g, B: b}
}

// Black is the zero colour, exported so callers don't need a composite
// literal for the common terminal-path case.
func Black[T Channel]() ColourRgb[T] {
	return ColourRgb[T]{}
}

// Add returns the component-wise sum of two colours.
func (c ColourRgb[T]) Add(d ColourRgb[T]) ColourRgb[T] {
	return ColourRgb[T]{R: c.R + d.R, G: c.G + d.G, B: c.B + d.B}
}

// Mul returns the component-wise (Hadamard) product of two colours.
func (c ColourRgb[T]) Mul(d ColourRgb[T]) ColourRgb[T] {
	return ColourRgb[T]{R: c.R * d.R, G: c.G * d.G, B: c.B * d.B}
}

// Scale returns the colour scaled uniformly by s.
func (c ColourRgb[T]) Scale(s T) ColourRgb[T] {
	return ColourRgb[T]{R: c.R * s, G: c.G * s, B: c.B * s}
}

// Average returns the arithmetic mean of the three channels. Used by the
// path-tracing kernel as a scalar importance estimate for a colour (spec §4.8).
func (c ColourRgb[T]) Average() T {
	return (c.R + c.G + c.B) / 3
}

// Max returns the largest of the three channels.
func (c ColourRgb[T]) Max() T {
	m := c.R
	if c.G > m {
		m = c.G
	}
	if c.B > m {
		m = c.B
	}
	return m
}

// DefaultGamma is the gamma exponent used by ToRGB8/FromRGB8 when none is
// specified, matching spec §4.2.
const DefaultGamma = 2.2

// RGB8 is the gamma-encoded 8-bit display colour.
type RGB8 struct {
	R, G, B uint8
}

// Ditherer draws a dither offset in [-0.5/255, +0.5/255) per channel.
// ToRGB8 takes it as an argument instead of drawing from a package-global
// source, so each caller supplies its own (imagefile defaults to a
// zero-offset Ditherer).
type Ditherer interface {
	// Dither returns a value uniformly distributed in [-0.5/255, 0.5/255).
	Dither() float64
}

// ToRGB8 converts a linear colour to gamma-encoded 8-bit, applying ordered
// dither and gamma DefaultGamma. floor(clamp((c^(1/gamma) + dither)*256, 0, 255)).
func ToRGB8[T Channel](c ColourRgb[T], d Ditherer) RGB8 {
	return ToRGB8Gamma(c, d, DefaultGamma)
}

// ToRGB8Gamma is ToRGB8 with an explicit gamma exponent.
func ToRGB8Gamma[T Channel](c ColourRgb[T], d Ditherer, gamma float64) RGB8 {
	return RGB8{
		R: encodeChannel(float64(c.R), d, gamma),
		G: encodeChannel(float64(c.G), d, gamma),
		B: encodeChannel(float64(c.B), d, gamma),
	}
}

func encodeChannel(c float64, d Ditherer, gamma float64) uint8 {
	encoded := math.Pow(clamp01(c), 1/gamma)
	var dither float64
	if d != nil {
		dither = d.Dither()
	}
	scaled := (encoded + dither) * 256
	if scaled < 0 {
		scaled = 0
	}
	if scaled > 255 {
		scaled = 255
	}
	return uint8(math.Floor(scaled))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// FromRGB8 converts gamma-encoded 8-bit colour back to the linear working
// space: (c/255)^gamma.
func FromRGB8[T Channel](c RGB8) ColourRgb[T] {
	return FromRGB8Gamma[T](c, DefaultGamma)
}

// FromRGB8Gamma is FromRGB8 with an explicit gamma exponent.
func FromRGB8Gamma[T Channel](c RGB8, gamma float64) ColourRgb[T] {
	return ColourRgb[T]{
		R: T(math.Pow(float64(c.R)/255, gamma)),
		G: T(math.Pow(float64(c.G)/255, gamma)),
		B: T(math.Pow(float64(c.B)/255, gamma)),
	}
}
