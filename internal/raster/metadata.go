package raster

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/evanoberholster/imagemeta"
	"github.com/rs/zerolog/log"
)

// Metadata holds the EXIF fields worth mentioning to the analysis
// collaborator. Extraction is best-effort: most screenshots and web images
// carry nothing, and that is fine.
type Metadata struct {
	CameraMake  string
	CameraModel string
	DateTaken   time.Time
	HasDate     bool
	Latitude    float64
	Longitude   float64
	HasGPS      bool
}

// ExtractMetadata reads EXIF metadata from the original encoded bytes.
// It auto-detects JPEG, HEIC, and TIFF containers; PNG and WebP typically
// yield nothing and return an error the caller can ignore.
func ExtractMetadata(data []byte) (*Metadata, error) {
	exif, err := imagemeta.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode EXIF metadata: %w", err)
	}

	m := &Metadata{
		CameraMake:  strings.TrimSpace(exif.Make),
		CameraModel: strings.TrimSpace(exif.Model),
	}

	if !exif.DateTimeOriginal().IsZero() {
		m.DateTaken = exif.DateTimeOriginal()
		m.HasDate = true
	} else if !exif.CreateDate().IsZero() {
		m.DateTaken = exif.CreateDate()
		m.HasDate = true
	}

	gps := exif.GPS
	if gps.Latitude() != 0 || gps.Longitude() != 0 {
		m.Latitude = gps.Latitude()
		m.Longitude = gps.Longitude()
		m.HasGPS = true
	}

	log.Debug().
		Bool("has_gps", m.HasGPS).
		Bool("has_date", m.HasDate).
		Str("camera", strings.TrimSpace(m.CameraMake+" "+m.CameraModel)).
		Msg("Image metadata extraction complete")

	return m, nil
}

// PromptContext formats the metadata as a short text block for inclusion
// in the enhancement prompt. Returns "" when nothing useful was found.
func (m *Metadata) PromptContext() string {
	var sb strings.Builder

	if m.CameraMake != "" || m.CameraModel != "" {
		sb.WriteString(fmt.Sprintf("Shot on: %s %s\n", m.CameraMake, m.CameraModel))
	}
	if m.HasDate {
		sb.WriteString(fmt.Sprintf("Taken: %s\n", m.DateTaken.Format("Monday, January 2, 2006")))
	}
	if m.HasGPS {
		sb.WriteString(fmt.Sprintf("Location: %.6f, %.6f\n", m.Latitude, m.Longitude))
	}
	return sb.String()
}
