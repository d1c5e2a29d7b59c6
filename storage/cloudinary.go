package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	config "github.com/arnav2305/eduprime/configs"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

const (
	ScreenshotFolder = "eduprime_screenshots"
	ReceiptFolder    = "eduprime_receipts"
)

var ErrNotConfigured = errors.New("blob storage is not configured")

// Blob is an in-memory payload staged for upload. FromBytes builds one;
// WithUploadProgress attaches a progress observer without mutating the
// original.
type Blob struct {
	data        []byte
	contentType string
	onProgress  ProgressFunc
}

func FromBytes(data []byte, contentType string) *Blob {
	return &Blob{data: data, contentType: contentType}
}

func (b *Blob) WithUploadProgress(fn ProgressFunc) *Blob {
	clone := *b
	clone.onProgress = fn
	return &clone
}

func (b *Blob) Size() int64 {
	return int64(len(b.data))
}

func (b *Blob) ContentType() string {
	return b.contentType
}

// Reader streams the payload, reporting progress to the attached observer
// as bytes are consumed.
func (b *Blob) Reader() io.Reader {
	return newProgressReader(bytes.NewReader(b.data), b.Size(), b.onProgress)
}

// Handle is an opaque reference to stored content.
type Handle struct {
	PublicID  string
	SecureURL string
}

// GetDirectURL resolves the handle to a directly fetchable URL.
func (h Handle) GetDirectURL() string {
	return h.SecureURL
}

// Store uploads blobs and resolves them to handles.
type Store interface {
	Upload(ctx context.Context, blob *Blob, folder string) (Handle, error)
}

type CloudinaryStore struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinaryStore() (*CloudinaryStore, error) {
	cloudinaryURL := config.Config("CLOUDINARY_URL")
	if cloudinaryURL == "" {
		return nil, ErrNotConfigured
	}

	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Cloudinary: %w", err)
	}
	return &CloudinaryStore{cld: cld}, nil
}

func (s *CloudinaryStore) Upload(ctx context.Context, blob *Blob, folder string) (Handle, error) {
	if s == nil || s.cld == nil {
		return Handle{}, ErrNotConfigured
	}

	resourceType := "image"
	if blob.contentType == "application/pdf" {
		resourceType = "raw"
	}

	result, err := s.cld.Upload.Upload(ctx, blob.Reader(), uploader.UploadParams{
		PublicID:     fmt.Sprintf("%s/%s", folder, uuid.New().String()),
		Folder:       folder,
		ResourceType: resourceType,
	})
	if err != nil {
		return Handle{}, err
	}

	return Handle{PublicID: result.PublicID, SecureURL: result.SecureURL}, nil
}
