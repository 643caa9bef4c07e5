// Package kernel evaluates compiled colorexpr programs over images on the
// CPU.
//
// Every source is converted to non-premultiplied 16-bit RGBA at the output
// size; channel r, g, b, a of a source pixel is channel 0..3 of its vector.
// Rows are evaluated in parallel.
package kernel

import (
	"context"
	"fmt"
	"image"
	"math"
	"time"

	"golang.org/x/image/draw"

	"github.com/gogpu/colorexpr"
	"github.com/gogpu/colorexpr/internal/srgb"
	"github.com/gogpu/colorexpr/internal/workers"
)

// Apply evaluates p for every pixel and returns the result. sources are
// bound to the program's roots in slot order. Apply stops between rows
// once ctx is done.
func Apply(ctx context.Context, p *colorexpr.Program, sources []image.Image, opts ...Option) (*image.NRGBA64, error) {
	start := time.Now()
	img, err := apply(ctx, p, sources, opts)
	colorexpr.Metrics.ObserveEvaluation(time.Since(start).Seconds(), err)
	if err != nil {
		return nil, err
	}
	b := img.Bounds()
	colorexpr.Logger().Info("kernel: applied", "expression", p.Expression,
		"width", b.Dx(), "height", b.Dy(), "duration", time.Since(start))
	return img, nil
}

func apply(ctx context.Context, p *colorexpr.Program, sources []image.Image, opts []Option) (*image.NRGBA64, error) {
	if p == nil {
		return nil, fmt.Errorf("kernel: nil program")
	}
	if !p.Evaluable() {
		_, err := p.Eval(nil)
		return nil, fmt.Errorf("kernel: %w", err)
	}
	if len(sources) < p.Sources {
		return nil, fmt.Errorf("kernel: program reads %d sources, got %d", p.Sources, len(sources))
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	w, h := o.width, o.height
	if w <= 0 || h <= 0 {
		if len(sources) == 0 {
			return nil, fmt.Errorf("kernel: no sources and no output size")
		}
		size := sources[0].Bounds().Size()
		w, h = size.X, size.Y
	}
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("kernel: empty output size %dx%d", w, h)
	}

	planes := make([]*image.NRGBA64, len(sources))
	decode := make([]bool, len(sources))
	for i, src := range sources {
		if src == nil {
			return nil, fmt.Errorf("kernel: source %d is nil", i)
		}
		planes[i] = normalize(src, w, h, o.resampler, i)
		decode[i] = o.linear && srgbSource(p, i)
	}

	dst := image.NewNRGBA64(image.Rect(0, 0, w, h))
	pool := workers.New(o.workers)
	defer pool.Close()

	errs := make([]error, h)
	err := pool.Rows(ctx, h, func(y int) {
		px := make([]colorexpr.Vector, len(planes))
		for x := range w {
			for i, plane := range planes {
				px[i] = read(plane, x, y, decode[i])
			}
			v, err := p.Eval(px)
			if err != nil {
				errs[y] = err
				return
			}
			write(dst, x, y, v, o.encode)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("kernel: %w", err)
	}
	for _, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("kernel: %w", err)
		}
	}
	return dst, nil
}

// srgbSource reports whether source i holds sRGB-encoded values. Programs
// without source flags treat every source as encoded.
func srgbSource(p *colorexpr.Program, i int) bool {
	if p.SRGB == nil {
		return true
	}
	return i < len(p.SRGB) && p.SRGB[i]
}

// normalize returns src as a zero-origin NRGBA64 of size w x h.
func normalize(src image.Image, w, h int, resampler draw.Scaler, index int) *image.NRGBA64 {
	b := src.Bounds()
	if n, ok := src.(*image.NRGBA64); ok && b.Min == (image.Point{}) && b.Dx() == w && b.Dy() == h {
		return n
	}
	dst := image.NewNRGBA64(image.Rect(0, 0, w, h))
	if b.Dx() == w && b.Dy() == h {
		draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
		return dst
	}
	colorexpr.Logger().Warn("kernel: resampling source",
		"source", index, "from", b.Size().String(), "to", dst.Bounds().Size().String())
	resampler.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst
}

func read(img *image.NRGBA64, x, y int, linear bool) colorexpr.Vector {
	i := img.PixOffset(x, y)
	s := img.Pix[i : i+8 : i+8]
	v := colorexpr.Vector{N: colorexpr.MaxComponents}
	for c := range 4 {
		u := uint16(s[2*c])<<8 | uint16(s[2*c+1])
		if linear && c < 3 {
			v.C[c] = srgb.Decode16(u)
		} else {
			v.C[c] = float64(u) / 0xffff
		}
	}
	return v
}

func write(img *image.NRGBA64, x, y int, v colorexpr.Vector, encode bool) {
	i := img.PixOffset(x, y)
	s := img.Pix[i : i+8 : i+8]
	for c := range 4 {
		var u uint16
		if encode && c < 3 {
			u = srgb.Encode16(v.C[c])
		} else {
			u = quantize(v.C[c])
		}
		s[2*c] = uint8(u >> 8)
		s[2*c+1] = uint8(u)
	}
}

// quantize clamps x to [0, 1] and scales it to 16 bits. NaN maps to 0.
func quantize(x float64) uint16 {
	if !(x > 0) {
		return 0
	}
	if x >= 1 {
		return 0xffff
	}
	return uint16(math.Round(x * 0xffff))
}
