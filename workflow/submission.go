package workflow

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/arnav2305/eduprime/storage"
	"github.com/google/uuid"
)

// MaxScreenshotBytes is the upload size ceiling (5 MiB).
const MaxScreenshotBytes = 5 * 1024 * 1024

// MinTransactionIDLength is the shortest accepted transaction reference
// after trimming surrounding whitespace.
const MinTransactionIDLength = 5

type State int

const (
	StateIdle State = iota
	StateValidating
	StateUploading
	StateSubmitting
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateValidating:
		return "validating"
	case StateUploading:
		return "uploading"
	case StateSubmitting:
		return "submitting"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// BlobStore is the upload capability the workflow suspends on.
type BlobStore interface {
	Upload(ctx context.Context, blob *storage.Blob, folder string) (storage.Handle, error)
}

// ProofStore persists the proof record once the screenshot is stored.
type ProofStore interface {
	CreateProof(ctx context.Context, userID, packageID uuid.UUID, transactionID string, screenshot storage.Handle) (uuid.UUID, error)
}

// Invalidator marks cached listings stale after a successful submission.
type Invalidator interface {
	Invalidate(name string) uint64
}

// Input is one submission attempt: the selected package plus the two
// required form fields.
type Input struct {
	UserID        uuid.UUID
	PackageID     uuid.UUID
	TransactionID string
	ContentType   string
	Screenshot    []byte
}

// Submission walks one payment-proof attempt through
// validating -> uploading -> submitting. At most one attempt runs at a time
// per instance; a failed attempt lands in the failed state with the error
// retained, the caller can correct the input and retry, and every retry
// re-validates from scratch.
type Submission struct {
	blobs      BlobStore
	proofs     ProofStore
	caches     Invalidator
	cacheNames []string

	mu       sync.Mutex
	inFlight bool
	state    State
	progress int
	lastErr  error
}

func NewSubmission(blobs BlobStore, proofs ProofStore, caches Invalidator, cacheNames ...string) *Submission {
	return &Submission{
		blobs:      blobs,
		proofs:     proofs,
		caches:     caches,
		cacheNames: cacheNames,
		state:      StateIdle,
	}
}

func (s *Submission) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Progress reports the upload percentage of the active attempt.
func (s *Submission) Progress() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.progress
}

// Err returns the error of the most recent failed attempt.
func (s *Submission) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

func (s *Submission) setState(state State) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}

func (s *Submission) setProgress(pct int) {
	s.mu.Lock()
	s.progress = pct
	s.mu.Unlock()
}

// Validate applies the static input checks. No network activity happens
// here or on any path where this returns an error.
func Validate(in Input) error {
	contentType := in.ContentType
	if contentType == "" {
		contentType = http.DetectContentType(in.Screenshot)
	}
	if !strings.HasPrefix(contentType, "image/") {
		return ErrInvalidFileType
	}
	if int64(len(in.Screenshot)) > MaxScreenshotBytes {
		return ErrFileTooLarge
	}
	if len(strings.TrimSpace(in.TransactionID)) < MinTransactionIDLength {
		return ErrInvalidTransactionID
	}
	return nil
}

// Run executes one submission attempt end to end and returns the created
// proof id. Concurrent calls on the same instance beyond the first fail
// with ErrSubmissionInFlight.
func (s *Submission) Run(ctx context.Context, in Input) (uuid.UUID, error) {
	if s.blobs == nil || s.proofs == nil {
		return uuid.Nil, ErrNotAvailable
	}

	s.mu.Lock()
	if s.inFlight {
		s.mu.Unlock()
		return uuid.Nil, ErrSubmissionInFlight
	}
	s.inFlight = true
	s.progress = 0
	s.lastErr = nil
	s.mu.Unlock()

	proofID, err := s.run(ctx, in)

	s.mu.Lock()
	s.inFlight = false
	if err != nil {
		s.lastErr = err
		s.state = StateFailed
	} else {
		s.state = StateSucceeded
	}
	s.mu.Unlock()

	return proofID, err
}

func (s *Submission) run(ctx context.Context, in Input) (uuid.UUID, error) {
	s.setState(StateValidating)
	if err := Validate(in); err != nil {
		return uuid.Nil, err
	}

	s.setState(StateUploading)
	blob := storage.FromBytes(in.Screenshot, in.ContentType).
		WithUploadProgress(s.setProgress)
	handle, err := s.blobs.Upload(ctx, blob, storage.ScreenshotFolder)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %v", ErrUpload, err)
	}

	s.setState(StateSubmitting)
	proofID, err := s.proofs.CreateProof(ctx, in.UserID, in.PackageID, strings.TrimSpace(in.TransactionID), handle)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %v", ErrSubmission, err)
	}

	if s.caches != nil {
		for _, name := range s.cacheNames {
			s.caches.Invalidate(name)
		}
	}
	return proofID, nil
}
