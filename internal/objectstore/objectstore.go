package objectstore

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	storage_go "github.com/supabase-community/storage-go"
)

// uploadsPrefix is where raw video objects live inside the bucket.
const uploadsPrefix = "uploads"

// downloadURLTTLSeconds bounds how long a minted read URL stays valid.
const downloadURLTTLSeconds = 3600

// Signer mints time-limited capability URLs for the video bucket and fetches
// raw objects for the processing pipeline. It holds no local state; every call
// is a delegation to the storage service.
type Signer interface {
	// GenerateUploadURL mints a fresh video id for the given extension and a
	// signed URL that allows exactly one direct client upload to it. The URL
	// does not pin a content type; the client sets Content-Type on its PUT and
	// the object is stored with whatever type the request carried.
	GenerateUploadURL(ctx context.Context, extension string) (url string, videoID string, err error)
	// GenerateDownloadURL mints a signed read URL for an existing video object.
	GenerateDownloadURL(ctx context.Context, videoID string) (string, error)
	// Download fetches the raw object bytes into a local file.
	Download(ctx context.Context, videoID string, destPath string) error
}

// SupabaseSigner implements Signer on a Supabase Storage bucket.
type SupabaseSigner struct {
	storage *storage_go.Client
	baseURL string
	bucket  string
}

func NewSupabaseSigner(storage *storage_go.Client, baseURL, bucket string) *SupabaseSigner {
	return &SupabaseSigner{storage: storage, baseURL: baseURL, bucket: bucket}
}

func objectPath(videoID string) string {
	return fmt.Sprintf("%s/%s", uploadsPrefix, videoID)
}

// absoluteURL resolves the relative URLs the storage API hands back.
func (s *SupabaseSigner) absoluteURL(url string) string {
	if strings.HasPrefix(url, "http") {
		return url
	}
	if strings.HasPrefix(url, "/") {
		return s.baseURL + url
	}
	return s.baseURL + "/" + url
}

func (s *SupabaseSigner) GenerateUploadURL(ctx context.Context, extension string) (string, string, error) {
	videoID := fmt.Sprintf("%s.%s", uuid.NewString(), extension)

	resp, err := s.storage.CreateSignedUploadUrl(s.bucket, objectPath(videoID))
	if err != nil {
		return "", "", fmt.Errorf("create signed upload url for %s: %w", videoID, err)
	}
	return s.absoluteURL(resp.Url), videoID, nil
}

func (s *SupabaseSigner) GenerateDownloadURL(ctx context.Context, videoID string) (string, error) {
	resp, err := s.storage.CreateSignedUrl(s.bucket, objectPath(videoID), downloadURLTTLSeconds)
	if err != nil {
		return "", fmt.Errorf("create signed download url for %s: %w", videoID, err)
	}
	return s.absoluteURL(resp.SignedURL), nil
}

func (s *SupabaseSigner) Download(ctx context.Context, videoID string, destPath string) error {
	data, err := s.storage.DownloadFile(s.bucket, objectPath(videoID))
	if err != nil {
		return fmt.Errorf("download %s: %w", videoID, err)
	}
	if err := os.WriteFile(destPath, data, 0o644); err != nil {
		return fmt.Errorf("write %s to %s: %w", videoID, destPath, err)
	}
	return nil
}
