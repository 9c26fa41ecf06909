// Package imageproc validates and normalises uploaded images before they are
// written to the blob store.
package imageproc

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"
)

const MaxUploadBytes = 2 << 20 // 2 MiB

var (
	ErrTooLarge    = errors.New("image may not be greater than 2048 kilobytes")
	ErrUnsupported = errors.New("image must be a file of type: jpeg, png, jpg, gif")
	ErrEmpty       = errors.New("image is empty")
)

var allowed = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/gif":  "gif",
}

// Image is an upload ready to be stored.
type Image struct {
	Body        []byte
	ContentType string
	Ext         string
}

// Options bound the stored image dimensions.
type Options struct {
	MaxWidth  int
	MaxHeight int
}

var (
	Avatar = Options{MaxWidth: 512, MaxHeight: 512}
	Story  = Options{MaxWidth: 1600, MaxHeight: 1600}
)

// Read consumes r up to the upload limit and processes it.
func Read(r io.Reader, opts Options) (*Image, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxUploadBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	return Process(data, opts)
}

// Process checks the content type by sniffing the bytes (the client supplied
// type is ignored) and downsizes still images that exceed opts. Animated
// formats are stored unchanged.
func Process(data []byte, opts Options) (*Image, error) {
	if len(data) == 0 {
		return nil, ErrEmpty
	}
	if len(data) > MaxUploadBytes {
		return nil, ErrTooLarge
	}
	mt := mimetype.Detect(data)
	ct := mt.String()
	ext, ok := allowed[ct]
	if !ok {
		return nil, ErrUnsupported
	}
	if ct == "image/gif" {
		return &Image{Body: data, ContentType: ct, Ext: ext}, nil
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, ErrUnsupported
	}
	b := img.Bounds()
	if (opts.MaxWidth <= 0 || b.Dx() <= opts.MaxWidth) && (opts.MaxHeight <= 0 || b.Dy() <= opts.MaxHeight) {
		return &Image{Body: data, ContentType: ct, Ext: ext}, nil
	}

	resized := imaging.Fit(img, opts.MaxWidth, opts.MaxHeight, imaging.Lanczos)
	format := imaging.PNG
	if ct == "image/jpeg" {
		format = imaging.JPEG
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, format, imaging.JPEGQuality(85)); err != nil {
		return nil, fmt.Errorf("encode image: %w", err)
	}
	return &Image{Body: buf.Bytes(), ContentType: ct, Ext: ext}, nil
}
