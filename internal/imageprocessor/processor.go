package imageprocessor

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"io"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// Mode selects how an image is fitted into the target box.
type Mode int

const (
	// Contain scales down to fit inside the box, keeping the aspect ratio.
	Contain Mode = iota
	// Cover fills the box exactly, cropping the centre of the overflowing axis.
	Cover
)

// ImageSize represents a target box
type ImageSize struct {
	Name   string
	Width  int
	Height int
	Mode   Mode
}

var (
	SizeAvatar    = ImageSize{Name: "avatar", Width: 400, Height: 400, Mode: Cover}
	SizeBanner    = ImageSize{Name: "banner", Width: 1500, Height: 500, Mode: Cover}
	SizePortfolio = ImageSize{Name: "portfolio", Width: 1600, Height: 1600, Mode: Contain}
)

// Result is an encoded image ready for storage.
type Result struct {
	Data        *bytes.Buffer
	Format      string // jpeg or png
	ContentType string
	Width       int
	Height      int
}

// Ext returns the file extension for the encoded format.
func (r *Result) Ext() string {
	if r.Format == "png" {
		return "png"
	}
	return "jpg"
}

// Processor handles image processing operations
type Processor struct {
	quality int // JPEG quality (1-100)
}

// NewProcessor creates a new image processor
func NewProcessor(quality int) *Processor {
	if quality <= 0 || quality > 100 {
		quality = 85
	}
	return &Processor{quality: quality}
}

// ProcessImage decodes, resizes and re-encodes. PNG stays PNG so
// transparency survives; every other input is encoded as JPEG.
func (p *Processor) ProcessImage(reader io.Reader, size ImageSize) (*Result, error) {
	img, imgFormat, err := image.Decode(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	var out image.Image
	switch size.Mode {
	case Cover:
		out = p.cover(img, size.Width, size.Height)
	default:
		out = p.contain(img, size.Width, size.Height)
	}

	res := &Result{Data: &bytes.Buffer{}, Width: out.Bounds().Dx(), Height: out.Bounds().Dy()}
	if imgFormat == "png" {
		if err := png.Encode(res.Data, out); err != nil {
			return nil, fmt.Errorf("failed to encode PNG: %w", err)
		}
		res.Format, res.ContentType = "png", "image/png"
		return res, nil
	}

	if err := jpeg.Encode(res.Data, out, &jpeg.Options{Quality: p.quality}); err != nil {
		return nil, fmt.Errorf("failed to encode JPEG: %w", err)
	}
	res.Format, res.ContentType = "jpeg", "image/jpeg"
	return res, nil
}

// contain resizes an image maintaining aspect ratio. Images already inside
// the box are not upscaled.
func (p *Processor) contain(img image.Image, maxWidth, maxHeight int) image.Image {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width <= maxWidth && height <= maxHeight {
		return p.scale(img, bounds, width, height)
	}

	ratio := float64(width) / float64(height)
	newWidth, newHeight := maxWidth, maxHeight
	if float64(maxWidth)/float64(maxHeight) > ratio {
		newWidth = int(float64(maxHeight) * ratio)
	} else {
		newHeight = int(float64(maxWidth) / ratio)
	}
	if newWidth < 1 {
		newWidth = 1
	}
	if newHeight < 1 {
		newHeight = 1
	}
	return p.scale(img, bounds, newWidth, newHeight)
}

func (p *Processor) cover(img image.Image, width, height int) image.Image {
	src := CoverCrop(img.Bounds(), width, height)
	return p.scale(img, src, width, height)
}

func (p *Processor) scale(img image.Image, src image.Rectangle, width, height int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, src, draw.Over, nil)
	return dst
}

// CoverCrop returns the centred sub-rectangle of bounds that has the
// width:height aspect ratio.
func CoverCrop(bounds image.Rectangle, width, height int) image.Rectangle {
	srcW, srcH := bounds.Dx(), bounds.Dy()
	target := float64(width) / float64(height)
	current := float64(srcW) / float64(srcH)

	if current > target {
		cropW := int(float64(srcH) * target)
		x0 := bounds.Min.X + (srcW-cropW)/2
		return image.Rect(x0, bounds.Min.Y, x0+cropW, bounds.Max.Y)
	}
	cropH := int(float64(srcW) / target)
	y0 := bounds.Min.Y + (srcH-cropH)/2
	return image.Rect(bounds.Min.X, y0, bounds.Max.X, y0+cropH)
}

// GetImageDimensions returns the dimensions of an image without decoding
// the pixel data.
func GetImageDimensions(reader io.Reader) (width, height int, err error) {
	cfg, _, err := image.DecodeConfig(reader)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to decode image: %w", err)
	}
	return cfg.Width, cfg.Height, nil
}

// IsValidImage checks if the reader contains a decodable image header
func IsValidImage(reader io.Reader) bool {
	_, _, err := image.DecodeConfig(reader)
	return err == nil
}
