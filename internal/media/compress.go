package media

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"
	"net/http"

	"github.com/disintegration/imaging"
)

const (
	// DefaultMaxBytes es el tope blando de cada imagen subida (~700KB)
	DefaultMaxBytes = 700 * 1024
	// DefaultMaxDimension es el lado máximo antes de subir
	DefaultMaxDimension = 1920
	// DefaultMaxPixels limita el tamaño decodificado en memoria (50MP)
	DefaultMaxPixels = 50_000_000

	startQuality = 90
	minQuality   = 40
	qualityStep  = 10
	shrinkFactor = 0.75
	maxShrinks   = 5
)

// ErrUnsupportedImage: el archivo no es un formato de imagen conocido
var ErrUnsupportedImage = errors.New("unsupported image")

// Compressor reduce la imagen hasta quedar bajo MaxBytes.
// El tope es blando: si no se alcanza se retorna el resultado más chico.
type Compressor struct {
	MaxBytes     int
	MaxDimension int
	// MaxPixels en cero usa DefaultMaxPixels
	MaxPixels int
}

func NewCompressor(maxBytes int) *Compressor {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &Compressor{MaxBytes: maxBytes, MaxDimension: DefaultMaxDimension, MaxPixels: DefaultMaxPixels}
}

// Compressed es la imagen lista para subir
type Compressed struct {
	Data        []byte
	ContentType string
	Width       int
	Height      int
}

// Compress lee la imagen y la recomprime como JPEG si pasa el tope.
// Las imágenes que ya están bajo el tope se suben tal cual.
func (c *Compressor) Compress(r io.Reader) (*Compressed, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
	}
	maxPixels := c.MaxPixels
	if maxPixels <= 0 {
		maxPixels = DefaultMaxPixels
	}
	// se valida con el encabezado, antes de reservar memoria para decodificar
	if int64(cfg.Width)*int64(cfg.Height) > int64(maxPixels) {
		return nil, fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrUnsupportedImage, cfg.Width, cfg.Height, maxPixels)
	}
	if len(data) <= c.MaxBytes && cfg.Width <= c.MaxDimension && cfg.Height <= c.MaxDimension {
		return &Compressed{
			Data:        data,
			ContentType: http.DetectContentType(data),
			Width:       cfg.Width,
			Height:      cfg.Height,
		}, nil
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s image: %w", format, err)
	}
	if cfg.Width > c.MaxDimension || cfg.Height > c.MaxDimension {
		img = imaging.Fit(img, c.MaxDimension, c.MaxDimension, imaging.Lanczos)
	}

	var best []byte
	for round := 0; round <= maxShrinks; round++ {
		for q := startQuality; q >= minQuality; q -= qualityStep {
			encoded, err := encodeJPEG(img, q)
			if err != nil {
				return nil, err
			}
			if best == nil || len(encoded) < len(best) {
				best = encoded
			}
			if len(encoded) <= c.MaxBytes {
				return compressed(encoded, img), nil
			}
		}

		// con la calidad mínima sigue grande: achicar y reintentar
		b := img.Bounds()
		w := int(float64(b.Dx()) * shrinkFactor)
		h := int(float64(b.Dy()) * shrinkFactor)
		if w < 1 || h < 1 {
			break
		}
		img = imaging.Resize(img, w, h, imaging.Lanczos)
	}

	bestImg, err := imaging.Decode(bytes.NewReader(best))
	if err != nil {
		return nil, fmt.Errorf("failed to read compressed image: %w", err)
	}
	return compressed(best, bestImg), nil
}

func encodeJPEG(img image.Image, quality int) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		return nil, fmt.Errorf("failed to encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

func compressed(data []byte, img image.Image) *Compressed {
	b := img.Bounds()
	return &Compressed{Data: data, ContentType: "image/jpeg", Width: b.Dx(), Height: b.Dy()}
}
