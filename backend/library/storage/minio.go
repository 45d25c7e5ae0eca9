package storage

import (
	"context"
	"fmt"

	"learnnest/backend/common"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinIOStore talks to an S3-compatible object store. Objects are named by the
// opaque file id recorded on the note; the bucket is flat.
type MinIOStore struct {
	client *minio.Client
	bucket string
}

// NewMinIOStore connects to the configured endpoint and makes sure the bucket
// exists.
func NewMinIOStore(endpoint, accessKey, secretKey, bucket string, useSSL bool) (*MinIOStore, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to object store: %w", err)
	}

	store := &MinIOStore{
		client: client,
		bucket: bucket,
	}
	if err := store.ensureBucket(context.Background()); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *MinIOStore) ensureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("check bucket %s: %w", s.bucket, err)
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("create bucket %s: %w", s.bucket, err)
		}
	}
	return nil
}

// GenerateUpload mints a new object id and a presigned PUT URL for it. The id
// becomes the note's file_id once the client finishes the upload.
func (s *MinIOStore) GenerateUpload(ctx context.Context) (*UploadHandle, error) {
	objectName := common.GetUUID()
	presignedURL, err := s.client.PresignedPutObject(ctx, s.bucket, objectName, uploadURLExpiry)
	if err != nil {
		return nil, fmt.Errorf("presign upload for %s: %w", objectName, err)
	}
	return &UploadHandle{
		FileID: objectName,
		URL:    presignedURL.String(),
	}, nil
}

// ResolveURL returns a presigned GET URL for the object, or "" when the object
// does not exist or the store is unreachable.
func (s *MinIOStore) ResolveURL(ctx context.Context, fileID string) string {
	if fileID == "" {
		return ""
	}
	if _, err := s.client.StatObject(ctx, s.bucket, fileID, minio.StatObjectOptions{}); err != nil {
		errResponse := minio.ToErrorResponse(err)
		if errResponse.Code != "NoSuchKey" {
			common.SysError(fmt.Sprintf("stat object %s: %s", fileID, err.Error()))
		}
		return ""
	}
	presignedURL, err := s.client.PresignedGetObject(ctx, s.bucket, fileID, downloadURLExpiry, nil)
	if err != nil {
		common.SysError(fmt.Sprintf("presign download for %s: %s", fileID, err.Error()))
		return ""
	}
	return presignedURL.String()
}
