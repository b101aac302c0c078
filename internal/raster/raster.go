// Package raster owns the decode/encode boundary of the pipeline: it turns
// user-supplied bytes into an immutable SourceImage exactly once per edit
// session, hands out fresh drawing surfaces so variants never share pixels,
// and encodes finished variants back to JPEG.
package raster

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/jpeg"
	"net/http"

	_ "image/gif"
	_ "image/png"

	"github.com/disintegration/imaging"
	"github.com/rs/zerolog/log"
	_ "golang.org/x/image/webp"

	"github.com/promptbrush/promptbrush/internal/surface"
)

// OutputQuality is the JPEG quality used for every encoded variant.
const OutputQuality = 90

// OutputMIME is the MIME type of every encoded variant.
const OutputMIME = "image/jpeg"

// uploadMaxDim bounds the longest edge of the copy sent to the analysis
// collaborator. The full-resolution pixels never leave the process.
const uploadMaxDim = 1024

// SourceImage is the immutable decoded raster for one edit session.
// The decoded pixels are private; drawing always happens on a fresh
// surface from NewSurface, so variants stay independent of one another.
type SourceImage struct {
	img    *image.RGBA
	width  int
	height int
	mime   string
	data   []byte // original encoded bytes, kept for metadata extraction
}

// Decode sniffs and decodes user-supplied image bytes. It is the only
// place pixels enter the pipeline; a failure here is fatal to the request.
func Decode(data []byte) (*SourceImage, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("image data is empty")
	}

	mime := http.DetectContentType(data)
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image (%s): %w", mime, err)
	}

	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)

	log.Debug().
		Str("format", format).
		Str("mime", mime).
		Int("width", b.Dx()).
		Int("height", b.Dy()).
		Int("bytes", len(data)).
		Msg("Source image decoded")

	return &SourceImage{
		img:    rgba,
		width:  b.Dx(),
		height: b.Dy(),
		mime:   mime,
		data:   data,
	}, nil
}

// Width returns the decoded width in pixels.
func (s *SourceImage) Width() int { return s.width }

// Height returns the decoded height in pixels.
func (s *SourceImage) Height() int { return s.height }

// MIME returns the sniffed MIME type of the original encoding.
func (s *SourceImage) MIME() string { return s.mime }

// Bytes returns the original encoded bytes (read-only by convention).
func (s *SourceImage) Bytes() []byte { return s.data }

// NewSurface returns a fresh drawable copy of the source pixels. Every
// variant composition starts from its own copy; the decoded buffer is
// never mutated.
func (s *SourceImage) NewSurface() *surface.Surface {
	return surface.FromImage(s.img)
}

// ForUpload returns a JPEG-encoded copy bounded to uploadMaxDim on its
// longest edge, suitable for the analysis call. Small images pass through
// at full resolution.
func (s *SourceImage) ForUpload() ([]byte, string, error) {
	img := image.Image(s.img)
	if s.width > uploadMaxDim || s.height > uploadMaxDim {
		img = imaging.Fit(s.img, uploadMaxDim, uploadMaxDim, imaging.Lanczos)
		log.Debug().
			Int("orig_width", s.width).
			Int("orig_height", s.height).
			Int("max_dim", uploadMaxDim).
			Msg("Downscaled source for analysis upload")
	}
	data, err := EncodeJPEG(img)
	if err != nil {
		return nil, "", err
	}
	return data, OutputMIME, nil
}

// EncodeJPEG encodes an image at the pipeline's fixed output quality.
func EncodeJPEG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: OutputQuality}); err != nil {
		return nil, fmt.Errorf("failed to encode JPEG: %w", err)
	}
	return buf.Bytes(), nil
}
