package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"

	"github.com/ichramsyah/bebasblog-backend/database"
	"github.com/ichramsyah/bebasblog-backend/helper"
)

type ImageService struct {
	images    ImageStore
	publicURL string
}

func NewImageService(images ImageStore, publicURL string) *ImageService {
	return &ImageService{images: images, publicURL: publicURL}
}

// Upload stores an uploaded jpg/png and returns its public URL.
func (s *ImageService) Upload(ctx context.Context, file *multipart.FileHeader) (string, error) {
	contentType, ok := helper.ImageContentType(file.Filename)
	if !ok {
		return "", helper.BadRequest("only jpg, jpeg and png images are allowed")
	}
	if file.Size > helper.MaxImageSize {
		return "", helper.BadRequest("image is larger than 5 MB")
	}

	src, err := file.Open()
	if err != nil {
		return "", helper.BadRequest("could not read uploaded image")
	}
	defer src.Close()

	id, err := s.images.Upload(ctx, file.Filename, contentType, src)
	if err != nil {
		return "", helper.Internal(fmt.Errorf("store image %q: %w", file.Filename, err))
	}
	return helper.ImageURL(s.publicURL, id.Hex()), nil
}

func (s *ImageService) UploadAll(ctx context.Context, files []*multipart.FileHeader) ([]string, error) {
	urls := make([]string, 0, len(files))
	for _, f := range files {
		url, err := s.Upload(ctx, f)
		if err != nil {
			return nil, err
		}
		urls = append(urls, url)
	}
	return urls, nil
}

// Open returns the image content and its content type.
func (s *ImageService) Open(ctx context.Context, hexID string) (io.ReadCloser, string, error) {
	id, ok := helper.ParseObjectID(hexID)
	if !ok {
		return nil, "", helper.NotFound("image not found")
	}
	rc, contentType, err := s.images.Open(ctx, id)
	if errors.Is(err, database.ErrNotFound) {
		return nil, "", helper.NotFound("image not found")
	}
	if err != nil {
		return nil, "", helper.Internal(err)
	}
	return rc, contentType, nil
}
