package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/phone-reserve/internal/imaging"
)

// ImageUploader converts uploads to WebP and stores them under a random key.
type ImageUploader struct {
	store ObjectStore
}

func NewImageUploader(store ObjectStore) *ImageUploader {
	return &ImageUploader{store: store}
}

// Upload stores r under prefix ("stores/3", "products/12") and returns its
// public URL.
func (u *ImageUploader) Upload(ctx context.Context, prefix string, r io.Reader) (string, error) {
	img, err := imaging.ToWebP(r)
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("%s/%s.webp", prefix, uuid.NewString())
	return u.store.Put(ctx, key, img.Data, "image/webp")
}
