package command

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	// Decoders for apply inputs.
	_ "image/gif"
	"image/jpeg"
	"image/png"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/gogpu/colorexpr"
)

// parseSource parses name[:components[:space]], e.g. "mask:1" or
// "c:3:hsl".
func parseSource(s string) (colorexpr.Source, error) {
	fields := strings.Split(s, ":")
	if len(fields) > 3 || fields[0] == "" {
		return colorexpr.Source{}, fmt.Errorf("invalid source %q: want name[:components[:space]]", s)
	}
	src := colorexpr.RGBA(fields[0])
	if len(fields) > 1 {
		n, err := strconv.Atoi(fields[1])
		if err != nil || n < 1 || n > colorexpr.MaxComponents {
			return colorexpr.Source{}, fmt.Errorf("invalid source %q: components must be 1..4", s)
		}
		src.Components = n
	}
	if len(fields) > 2 {
		space, err := colorexpr.ParseColorSpace(fields[2])
		if err != nil {
			return colorexpr.Source{}, fmt.Errorf("invalid source %q: %w", s, err)
		}
		src.Space = space
	}
	return src, nil
}

func parseSources(specs []string) ([]colorexpr.Source, error) {
	out := make([]colorexpr.Source, 0, len(specs))
	for _, s := range specs {
		src, err := parseSource(s)
		if err != nil {
			return nil, err
		}
		out = append(out, src)
	}
	return out, nil
}

// input is a named image file.
type input struct {
	name, path string
}

// parseInput parses name=path.
func parseInput(s string) (input, error) {
	name, path, ok := strings.Cut(s, "=")
	if !ok || name == "" || path == "" {
		return input{}, fmt.Errorf("invalid input %q: want name=file", s)
	}
	return input{name: name, path: path}, nil
}

func loadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// saveImage encodes img by the extension of path.
func saveImage(path string, img image.Image) (err error) {
	var encode func(*os.File) error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		encode = func(f *os.File) error { return png.Encode(f, img) }
	case ".jpg", ".jpeg":
		encode = func(f *os.File) error { return jpeg.Encode(f, img, &jpeg.Options{Quality: 95}) }
	case ".tif", ".tiff":
		encode = func(f *os.File) error { return tiff.Encode(f, img, &tiff.Options{Compression: tiff.Deflate}) }
	case ".bmp":
		encode = func(f *os.File) error { return bmp.Encode(f, img) }
	default:
		return fmt.Errorf("unsupported output format %q", filepath.Ext(path))
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return encode(f)
}
