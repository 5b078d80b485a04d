package storage

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/rs/zerolog/log"
)

// Storage persists uploaded files under a public path. SaveFile returns the
// stored relative path ("logos/<hash>.png"), which is what gets recorded on
// the listing row.
type Storage interface {
	SaveFile(fileHeader *multipart.FileHeader, dir string) (string, error)
	DeleteFile(storedPath string) error
	PublicURL(storedPath string) string
}

type LocalStorage struct {
	uploadDir string
}

type SpacesStorage struct {
	client *s3.S3
	bucket string
	cdnURL string
}

func NewLocalStorage(uploadDir string) *LocalStorage {
	return &LocalStorage{uploadDir: uploadDir}
}

func NewSpacesStorage(endpoint, region, bucket, cdnURL, accessKey, secretKey string) (*SpacesStorage, error) {
	config := &aws.Config{
		Credentials:      credentials.NewStaticCredentials(accessKey, secretKey, ""),
		Endpoint:         aws.String(endpoint),
		Region:           aws.String(region),
		S3ForcePathStyle: aws.Bool(false),
	}

	sess, err := session.NewSession(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return &SpacesStorage{
		client: s3.New(sess),
		bucket: bucket,
		cdnURL: cdnURL,
	}, nil
}

// hashedName reads the upload once and names it by content hash, so the same
// file always lands on the same path and re-uploads are idempotent.
func hashedName(fileHeader *multipart.FileHeader) (string, []byte, error) {
	src, err := fileHeader.Open()
	if err != nil {
		return "", nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer func() {
		if err := src.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close uploaded file")
		}
	}()

	content, err := io.ReadAll(src)
	if err != nil {
		return "", nil, fmt.Errorf("failed to read uploaded file: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	name := fmt.Sprintf("%x%s", sha256.Sum256(content), ext)
	return name, content, nil
}

func (ls *LocalStorage) SaveFile(fileHeader *multipart.FileHeader, dir string) (string, error) {
	name, content, err := hashedName(fileHeader)
	if err != nil {
		return "", err
	}
	storedPath := path.Join(dir, name)
	log.Debug().Str("original", fileHeader.Filename).Str("stored", storedPath).Msg("file upload hashed")

	fullDir := filepath.Join(ls.uploadDir, dir)
	if err := os.MkdirAll(fullDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	if err := os.WriteFile(filepath.Join(ls.uploadDir, filepath.FromSlash(storedPath)), content, 0644); err != nil {
		return "", fmt.Errorf("failed to save file: %w", err)
	}

	return storedPath, nil
}

func (ls *LocalStorage) DeleteFile(storedPath string) error {
	full := filepath.Join(ls.uploadDir, filepath.FromSlash(storedPath))
	if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

func (ls *LocalStorage) PublicURL(storedPath string) string {
	return "/uploads/" + storedPath
}

func (ss *SpacesStorage) SaveFile(fileHeader *multipart.FileHeader, dir string) (string, error) {
	name, content, err := hashedName(fileHeader)
	if err != nil {
		return "", err
	}
	storedPath := path.Join(dir, name)

	_, err = ss.client.PutObject(&s3.PutObjectInput{
		Bucket:      aws.String(ss.bucket),
		Key:         aws.String(storedPath),
		Body:        bytes.NewReader(content),
		ContentType: aws.String(getContentType(name)),
		ACL:         aws.String("public-read"),
	})
	if err != nil {
		log.Error().Err(err).Str("key", storedPath).Msg("failed to upload file to Spaces")
		return "", fmt.Errorf("failed to upload to Spaces: %w", err)
	}

	return storedPath, nil
}

func (ss *SpacesStorage) DeleteFile(storedPath string) error {
	_, err := ss.client.DeleteObject(&s3.DeleteObjectInput{
		Bucket: aws.String(ss.bucket),
		Key:    aws.String(storedPath),
	})
	if err != nil {
		log.Error().Err(err).Str("key", storedPath).Msg("failed to delete file from Spaces")
		return fmt.Errorf("failed to delete from Spaces: %w", err)
	}
	return nil
}

func (ss *SpacesStorage) PublicURL(storedPath string) string {
	return fmt.Sprintf("%s/%s", strings.TrimSuffix(ss.cdnURL, "/"), storedPath)
}

func getContentType(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	case ".svg":
		return "image/svg+xml"
	default:
		return "application/octet-stream"
	}
}
