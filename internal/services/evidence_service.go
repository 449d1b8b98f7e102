package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/curbwatch-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/curbwatch-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/curbwatch-backend/internal/policy"
	"github.com/ahmetcoskunkizilkaya/curbwatch-backend/internal/storage"
	"github.com/google/uuid"
)

var evidenceExtensions = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
	"image/heic": "heic",
}

type EvidenceService struct {
	store    storage.ObjectStore
	maxBytes int64
	baseURL  string
	now      func() time.Time
	nonce    func() string
}

func NewEvidenceService(store storage.ObjectStore, cfg *config.Config) *EvidenceService {
	return &EvidenceService{
		store:    store,
		maxBytes: cfg.EvidenceMaxBytes,
		baseURL:  evidenceBaseURL(cfg),
		now:      func() time.Time { return time.Now().UTC() },
		nonce:    func() string { return uuid.NewString()[:8] },
	}
}

// evidenceBaseURL is the prefix evidence URLs are handed out under.
func evidenceBaseURL(cfg *config.Config) string {
	if u := strings.TrimRight(cfg.S3PublicURL, "/"); u != "" {
		return u
	}
	return "/api/evidence"
}

// EvidenceKey places an upload under its owner's prefix. The nonce keeps two
// uploads in the same millisecond apart.
func EvidenceKey(owner uuid.UUID, at time.Time, nonce, ext string) string {
	return fmt.Sprintf("%s/%d-%s.%s", owner, at.UnixMilli(), nonce, ext)
}

func (s *EvidenceService) Upload(ctx context.Context, requester uuid.UUID, contentType string, size int64, r io.Reader) (*dto.EvidenceResponse, error) {
	ext, ok := evidenceExtensions[strings.ToLower(contentType)]
	if !ok {
		return nil, invalid("file", "must be a JPEG, PNG, WebP or HEIC image")
	}
	if size <= 0 {
		return nil, invalid("file", "is empty")
	}
	if size > s.maxBytes {
		return nil, invalid("file", fmt.Sprintf("must be at most %d bytes", s.maxBytes))
	}

	key := EvidenceKey(requester, s.now(), s.nonce(), ext)
	if err := policy.Authorize(policy.ResourceEvidence, policy.ActionInsert, requester, policy.Row{Key: key}); err != nil {
		return nil, err
	}

	if err := s.store.Put(ctx, key, r, size, strings.ToLower(contentType)); err != nil {
		slog.Error("evidence upload failed", "user_id", requester.String(), "error", err.Error())
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	slog.Info("evidence uploaded", "user_id", requester.String(), "key", key, "bytes", size)
	return &dto.EvidenceResponse{Key: key, URL: s.baseURL + "/" + key}, nil
}

// Open streams an evidence object. Keys outside the requester's prefix are
// denied without touching the store.
func (s *EvidenceService) Open(ctx context.Context, requester uuid.UUID, key string) (io.ReadCloser, storage.ObjectInfo, error) {
	if err := policy.Authorize(policy.ResourceEvidence, policy.ActionSelect, requester, policy.Row{Key: key}); err != nil {
		return nil, storage.ObjectInfo{}, err
	}

	rc, info, err := s.store.Get(ctx, key)
	if errors.Is(err, storage.ErrObjectNotFound) {
		return nil, storage.ObjectInfo{}, ErrEvidenceNotFound
	}
	if err != nil {
		return nil, storage.ObjectInfo{}, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return rc, info, nil
}
