// Package recorder writes rendered frames to disk: MJPEG AVI video for
// recordings and PNG for single snapshots.
package recorder

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"

	"github.com/icza/mjpeg"
)

// ErrFrameSize is returned when a frame does not match the video size.
var ErrFrameSize = errors.New("recorder: frame size mismatch")

// Video appends frames to an MJPEG AVI file.
type Video struct {
	writer  mjpeg.AviWriter
	path    string
	w, h    int
	options jpeg.Options
	buf     bytes.Buffer
	frames  int
}

// NewVideo creates path and prepares it for w x h frames at fps.
// quality is the JPEG quality in [1, 100]; out-of-range values use 85.
func NewVideo(path string, w, h int, fps int32, quality int) (*Video, error) {
	if quality < 1 || quality > 100 {
		quality = 85
	}
	if fps < 1 {
		fps = 30
	}
	aw, err := mjpeg.New(path, int32(w), int32(h), fps)
	if err != nil {
		return nil, fmt.Errorf("creating video %s: %w", path, err)
	}
	return &Video{
		writer:  aw,
		path:    path,
		w:       w,
		h:       h,
		options: jpeg.Options{Quality: quality},
	}, nil
}

// AddFrame encodes img as JPEG and appends it.
func (v *Video) AddFrame(img image.Image) error {
	b := img.Bounds()
	if b.Dx() != v.w || b.Dy() != v.h {
		return fmt.Errorf("%w: got %dx%d, want %dx%d", ErrFrameSize, b.Dx(), b.Dy(), v.w, v.h)
	}
	v.buf.Reset()
	if err := jpeg.Encode(&v.buf, img, &v.options); err != nil {
		return fmt.Errorf("encoding frame: %w", err)
	}
	if err := v.writer.AddFrame(v.buf.Bytes()); err != nil {
		return fmt.Errorf("writing frame: %w", err)
	}
	v.frames++
	return nil
}

// Frames returns the number of frames written.
func (v *Video) Frames() int { return v.frames }

// Path returns the output file path.
func (v *Video) Path() string { return v.path }

// Close finalises the AVI index. The file is unusable until Close returns.
func (v *Video) Close() error {
	if v == nil {
		return nil
	}
	return v.writer.Close()
}

// SavePNG writes img to path as PNG.
func SavePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return f.Close()
}
