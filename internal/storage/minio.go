package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/arcziwoda/skylock-sub000/internal/config"
	"github.com/arcziwoda/skylock-sub000/pkg/logger"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type MinIOStore struct {
	client *minio.Client
	bucket string
}

var _ Store = (*MinIOStore)(nil)

func NewMinIOStore(cfg config.MinIOConfig) (*MinIOStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, err
	}

	return &MinIOStore{client: client, bucket: cfg.Bucket}, nil
}

func (m *MinIOStore) Save(ctx context.Context, fileID uuid.UUID, reader io.Reader, size int64, contentType string) error {
	objectName := fileID.String()
	_, err := m.client.PutObject(ctx, m.bucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		logger.Error("minio_save_failed", err, map[string]interface{}{
			"object_name":  objectName,
			"size":         size,
			"content_type": contentType,
			"bucket":       m.bucket,
		})
		return err
	}
	logger.Info("minio_save_success", map[string]interface{}{
		"object_name": objectName,
		"size":        size,
		"bucket":      m.bucket,
	})
	return nil
}

func (m *MinIOStore) Open(ctx context.Context, fileID uuid.UUID) (io.ReadCloser, ObjectInfo, error) {
	objectName := fileID.String()
	obj, err := m.client.GetObject(ctx, m.bucket, objectName, minio.GetObjectOptions{})
	if err != nil {
		logger.Error("minio_open_failed", err, map[string]interface{}{
			"object_name": objectName,
			"bucket":      m.bucket,
		})
		return nil, ObjectInfo{}, err
	}

	stat, err := obj.Stat()
	if err != nil {
		obj.Close()
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, ObjectInfo{}, ErrObjectNotFound
		}
		logger.Error("minio_stat_failed", err, map[string]interface{}{
			"object_name": objectName,
			"bucket":      m.bucket,
		})
		return nil, ObjectInfo{}, err
	}

	return obj, ObjectInfo{Size: stat.Size, ContentType: stat.ContentType}, nil
}

func (m *MinIOStore) Delete(ctx context.Context, fileID uuid.UUID) error {
	objectName := fileID.String()
	err := m.client.RemoveObject(ctx, m.bucket, objectName, minio.RemoveObjectOptions{})
	if err != nil {
		logger.Error("minio_delete_failed", err, map[string]interface{}{
			"object_name": objectName,
			"bucket":      m.bucket,
		})
		return err
	}
	logger.Info("minio_delete_success", map[string]interface{}{
		"object_name": objectName,
		"bucket":      m.bucket,
	})
	return nil
}

func (m *MinIOStore) EnsureBucket(ctx context.Context) error {
	exists, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	if err := m.client.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed creating bucket %s: %w", m.bucket, err)
	}
	return nil
}
