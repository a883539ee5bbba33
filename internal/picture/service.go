package picture

import (
	"context"
	"fmt"
	"log/slog"

	"avatar-service/internal/security"
	"avatar-service/internal/storage"
	"avatar-service/internal/users"
)

// MaxFileSize caps the raw upload before any decoding happens.
const MaxFileSize = 3 << 20 // 3 MiB

// Service runs the upload and retrieval pipelines against the user record
// gateway and the blob store. It holds no per-user state and no locks, so
// concurrent uploads for the same user are last-write-wins: the later save
// takes the reference and the earlier blob is left as an orphan.
type Service struct {
	log   *slog.Logger
	users users.Gateway
	blobs storage.BlobStore
}

func NewService(log *slog.Logger, gateway users.Gateway, blobs storage.BlobStore) *Service {
	return &Service{log: log, users: gateway, blobs: blobs}
}

type UploadResult struct {
	Key string
	URL string
}

// Upload validates the request, normalizes the image, swaps the stored blob
// and persists the new reference. Preconditions are checked in order with no
// side effects; the only failure ever absorbed is deleting the superseded
// blob, because a stale orphan is cheaper than a lost new picture.
func (s *Service) Upload(ctx context.Context, userID string, data []byte, size int64, contentType string) (*UploadResult, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	if len(data) == 0 {
		return nil, ErrNoFile
	}
	if size > MaxFileSize || int64(len(data)) > MaxFileSize {
		return nil, ErrFileTooLarge
	}

	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if u == nil {
		return nil, ErrUserNotFound
	}

	normalized, err := Normalize(data)
	if err != nil {
		return nil, err
	}

	// retire the previous picture; failure here never blocks the upload
	if u.HasPicture() {
		if err := s.blobs.Delete(ctx, *u.ProfilePicture); err != nil {
			s.log.Warn("stale_blob_delete_failed",
				"user_id", userID,
				"key", *u.ProfilePicture,
				"error", err,
			)
		}
	}

	key := security.NewStorageKey()

	if err := s.blobs.Put(ctx, key, normalized, ContentType); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageWrite, err)
	}

	u.ProfilePicture = &key
	if err := s.users.Save(ctx, u); err != nil {
		// the blob is already durable; report the failure instead of
		// pretending the reference moved
		s.log.Error("picture_ref_persist_failed", "user_id", userID, "key", key, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrPersist, err)
	}

	url, err := s.blobs.SignedURL(ctx, key, 0)
	if err != nil {
		return nil, fmt.Errorf("sign url for %s: %w", key, err)
	}

	s.log.Info("profile_picture_uploaded",
		"user_id", userID,
		"key", key,
		"input_bytes", len(data),
		"stored_bytes", len(normalized),
	)
	return &UploadResult{Key: key, URL: url}, nil
}

// PictureURL resolves the caller's stored reference to a fresh signed URL.
// Every call mints a new URL with its own expiry; nothing is cached.
func (s *Service) PictureURL(ctx context.Context, userID string) (string, error) {
	if userID == "" {
		return "", ErrUnauthenticated
	}

	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("lookup user: %w", err)
	}
	if !u.HasPicture() {
		return "", ErrNotFound
	}

	url, err := s.blobs.SignedURL(ctx, *u.ProfilePicture, 0)
	if err != nil {
		return "", fmt.Errorf("sign url for %s: %w", *u.ProfilePicture, err)
	}
	return url, nil
}
