package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/interview-coach-team/interview-coach/pkg/config"
)

// MinIOClient wraps MinIO operations for interview artifacts (transcript
// archives and uploaded answer audio)
type MinIOClient struct {
	client *minio.Client
	bucket string
}

// NewMinIOClient creates a new MinIO client
func NewMinIOClient(cfg *config.StorageConfig) (*MinIOClient, error) {
	minioClient, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	client := &MinIOClient{
		client: minioClient,
		bucket: cfg.BucketName,
	}

	ctx := context.Background()
	if err := client.ensureBucket(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize bucket: %w", err)
	}

	return client, nil
}

// ensureBucket creates the bucket if it does not exist
func (m *MinIOClient) ensureBucket(ctx context.Context) error {
	exists, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}

	if !exists {
		err = m.client.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{})
		if err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return nil
}

// UploadFile uploads a file to MinIO
func (m *MinIOClient) UploadFile(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) error {
	_, err := m.client.PutObject(ctx, m.bucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("failed to upload file: %w", err)
	}

	return nil
}

// ArchiveTranscript stores the formatted transcript text under
// transcripts/<sessionID>.txt
func (m *MinIOClient) ArchiveTranscript(ctx context.Context, sessionID, transcript string) error {
	objectName := fmt.Sprintf("transcripts/%s.txt", sessionID)
	reader := bytes.NewReader([]byte(transcript))
	return m.UploadFile(ctx, objectName, reader, int64(len(transcript)), "text/plain")
}

// UploadAnswerAudio stores a candidate's recorded answer and returns a
// presigned URL the transcription service can fetch it from
func (m *MinIOClient) UploadAnswerAudio(ctx context.Context, sessionID string, audio io.Reader, size int64, contentType string) (string, error) {
	objectName := fmt.Sprintf("answers/%s/%d", sessionID, time.Now().UnixNano())
	if err := m.UploadFile(ctx, objectName, audio, size, contentType); err != nil {
		return "", err
	}

	url, err := m.client.PresignedGetObject(ctx, m.bucket, objectName, time.Hour, nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}

	return url.String(), nil
}
