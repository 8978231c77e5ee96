// Package storage persists uploaded profile images.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// ErrUnsupportedImage is returned for uploads that are not png or jpeg.
var ErrUnsupportedImage = errors.New("unsupported image type")

var allowedImageTypes = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
}

// ImageStore saves an image under key and returns the URL it is reachable at.
// Delete takes such a URL and removes the image again.
type ImageStore interface {
	Save(ctx context.Context, key, contentType string, body io.Reader) (string, error)
	Delete(ctx context.Context, fileURL string) error
}

// Image is an upload that passed content sniffing.
type Image struct {
	Key         string
	ContentType string
	Data        []byte
}

// PrepareImage reads an upload, checks its real content type and gives it a
// random key so client file names never reach the store.
func PrepareImage(r io.Reader) (*Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}

	mtype := mimetype.Detect(data)
	ext, ok := allowedImageTypes[mtype.String()]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedImage, mtype.String())
	}

	return &Image{
		Key:         uuid.NewString() + ext,
		ContentType: mtype.String(),
		Data:        data,
	}, nil
}

// SaveImage stores a prepared image.
func SaveImage(ctx context.Context, store ImageStore, img *Image) (string, error) {
	return store.Save(ctx, img.Key, img.ContentType, bytes.NewReader(img.Data))
}
