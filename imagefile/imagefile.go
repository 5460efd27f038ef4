// Package imagefile is the save collaborator for a rendered Image: it
// converts the renderer's linear-colour buffer to 8-bit display colour
// and encodes it to disk. The core renderer has no file I/O of its own
// (spec §6: "save(path) is a collaborator hook"); this package is that
// hook (grounded on original_source/include/Image.hpp's save(), which
// hands the buffer to SFML's PNG writer the same way this hands it to
// the standard library's).
package imagefile

import (
	stdcolor "image"
	"image/color"
	"image/png"
	"io"
	"os"

	"golang.org/x/image/draw"

	"github.com/gogpu/pathtrace/colour"
	ptimage "github.com/gogpu/pathtrace/image"
)

// adapter presents a pathtrace Image[ColourRgb[float64]] as a standard
// library image.Image, applying the gamma-encode-with-dither conversion
// per pixel so it can be handed to golang.org/x/image/draw and the
// stdlib image/png encoder.
type adapter struct {
	img   *ptimage.Image[colour.ColourRgb[float64]]
	d     colour.Ditherer
	gamma float64
}

func (a *adapter) ColorModel() color.Model { return color.RGBAModel }

func (a *adapter) Bounds() stdcolor.Rectangle {
	return stdcolor.Rect(0, 0, a.img.Width(), a.img.Height())
}

func (a *adapter) At(x, y int) color.Color {
	c8 := colour.ToRGB8Gamma(a.img.At(x, y), a.d, a.gamma)
	return color.RGBA{R: c8.R, G: c8.G, B: c8.B, A: 255}
}

// noDither is the default Ditherer used by SavePNG and EncodePNG when the caller doesn't
// supply one: a zero offset, producing deterministic output.
type noDither struct{}

func (noDither) Dither() float64 { return 0 }

// Option configures SavePNG's and EncodePNG's colour conversion.
type Option func(*saveConfig)

type saveConfig struct {
	ditherer colour.Ditherer
	gamma    float64
}

// WithDitherer overrides the per-channel dither source used during the
// linear-to-8-bit conversion. Pass a per-goroutine Ditherer, never one
// shared across concurrent saves (spec §4.2/§9).
func WithDitherer(d colour.Ditherer) Option {
	return func(c *saveConfig) { c.ditherer = d }
}

// WithGamma overrides the gamma exponent; default is colour.DefaultGamma.
func WithGamma(gamma float64) Option {
	return func(c *saveConfig) { c.gamma = gamma }
}

// SavePNG encodes img as a PNG file at path, converting every pixel from
// the linear working colour space to 8-bit gamma-encoded display colour
// on the way out.
func SavePNG(img *ptimage.Image[colour.ColourRgb[float64]], path string, opts ...Option) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return EncodePNG(f, img, opts...)
}

// EncodePNG writes img to w as PNG, for callers that want to stream the
// result rather than write directly to a named file.
func EncodePNG(w io.Writer, img *ptimage.Image[colour.ColourRgb[float64]], opts ...Option) error {
	cfg := saveConfig{ditherer: noDither{}, gamma: colour.DefaultGamma}
	for _, o := range opts {
		o(&cfg)
	}

	src := &adapter{img: img, d: cfg.ditherer, gamma: cfg.gamma}
	dst := stdcolor.NewRGBA(src.Bounds())
	draw.Draw(dst, dst.Bounds(), src, stdcolor.Point{}, draw.Src)

	return png.Encode(w, dst)
}
