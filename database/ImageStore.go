package database

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ImageStore keeps uploaded images in a GridFS bucket.
type ImageStore struct {
	db *mongo.Database
}

func NewImageStore(db *mongo.Database) *ImageStore {
	return &ImageStore{db: db}
}

// bucket builds a bucket per call; deadlines are bucket-wide and must not leak between requests.
func (s *ImageStore) bucket(ctx context.Context) (*gridfs.Bucket, error) {
	bucket, err := gridfs.NewBucket(s.db, options.GridFSBucket().SetName(ImageBucket))
	if err != nil {
		return nil, fmt.Errorf("gridfs bucket: %w", err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		if err := bucket.SetReadDeadline(deadline); err != nil {
			return nil, err
		}
		if err := bucket.SetWriteDeadline(deadline); err != nil {
			return nil, err
		}
	}
	return bucket, nil
}

func (s *ImageStore) Upload(ctx context.Context, filename, contentType string, src io.Reader) (primitive.ObjectID, error) {
	bucket, err := s.bucket(ctx)
	if err != nil {
		return primitive.NilObjectID, err
	}

	fileID := primitive.NewObjectID()
	opts := options.GridFSUpload().SetMetadata(bson.M{"contentType": contentType})
	if err := bucket.UploadFromStreamWithID(fileID, filename, src, opts); err != nil {
		return primitive.NilObjectID, fmt.Errorf("upload image: %w", err)
	}
	return fileID, nil
}

// Open streams an image back. The caller closes the reader.
func (s *ImageStore) Open(ctx context.Context, id primitive.ObjectID) (io.ReadCloser, string, error) {
	bucket, err := s.bucket(ctx)
	if err != nil {
		return nil, "", err
	}

	stream, err := bucket.OpenDownloadStream(id)
	if errors.Is(err, gridfs.ErrFileNotFound) {
		return nil, "", ErrNotFound
	}
	if err != nil {
		return nil, "", fmt.Errorf("open image: %w", err)
	}

	contentType := "application/octet-stream"
	if file := stream.GetFile(); file != nil && file.Metadata != nil {
		if v, ok := file.Metadata.Lookup("contentType").StringValueOK(); ok && v != "" {
			contentType = v
		}
	}
	return stream, contentType, nil
}
