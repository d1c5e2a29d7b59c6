package workflow

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/arnav2305/eduprime/storage"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBlobStore struct {
	handle  storage.Handle
	err     error
	uploads int
	block   chan struct{}
}

func (f *fakeBlobStore) Upload(_ context.Context, blob *storage.Blob, _ string) (storage.Handle, error) {
	f.uploads++
	if f.block != nil {
		<-f.block
	}
	if f.err != nil {
		return storage.Handle{}, f.err
	}
	// Consume the payload so the progress observer fires as it would
	// during a real upload.
	if _, err := io.Copy(io.Discard, blob.Reader()); err != nil {
		return storage.Handle{}, err
	}
	return f.handle, nil
}

type fakeProofStore struct {
	proofID uuid.UUID
	err     error
	creates int

	lastTransactionID string
	lastHandle        storage.Handle
}

func (f *fakeProofStore) CreateProof(_ context.Context, _, _ uuid.UUID, transactionID string, screenshot storage.Handle) (uuid.UUID, error) {
	f.creates++
	f.lastTransactionID = transactionID
	f.lastHandle = screenshot
	if f.err != nil {
		return uuid.Nil, f.err
	}
	return f.proofID, nil
}

type fakeInvalidator struct {
	mu    sync.Mutex
	bumps map[string]int
}

func (f *fakeInvalidator) Invalidate(name string) uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.bumps == nil {
		f.bumps = make(map[string]int)
	}
	f.bumps[name]++
	return uint64(f.bumps[name])
}

func validInput() Input {
	return Input{
		UserID:        uuid.New(),
		PackageID:     uuid.New(),
		TransactionID: "TXN1234567",
		ContentType:   "image/jpeg",
		Screenshot:    bytes.Repeat([]byte{0xAB}, 2*1024*1024),
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Input)
		wantErr error
	}{
		{name: "valid input", mutate: func(*Input) {}, wantErr: nil},
		{
			name:    "non-image mime type",
			mutate:  func(in *Input) { in.ContentType = "application/pdf" },
			wantErr: ErrInvalidFileType,
		},
		{
			name:    "text file",
			mutate:  func(in *Input) { in.ContentType = "text/plain" },
			wantErr: ErrInvalidFileType,
		},
		{
			name: "file exactly at limit passes",
			mutate: func(in *Input) {
				in.Screenshot = bytes.Repeat([]byte{0x01}, MaxScreenshotBytes)
			},
			wantErr: nil,
		},
		{
			name: "file one byte over limit",
			mutate: func(in *Input) {
				in.Screenshot = bytes.Repeat([]byte{0x01}, MaxScreenshotBytes+1)
			},
			wantErr: ErrFileTooLarge,
		},
		{
			name:    "transaction id too short",
			mutate:  func(in *Input) { in.TransactionID = "abcd" },
			wantErr: ErrInvalidTransactionID,
		},
		{
			name:    "whitespace-padded short transaction id",
			mutate:  func(in *Input) { in.TransactionID = "  abcd   " },
			wantErr: ErrInvalidTransactionID,
		},
		{
			name:    "five characters is enough",
			mutate:  func(in *Input) { in.TransactionID = "ab cde" },
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)
			err := Validate(in)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestRunValidationFailureNeverReachesNetwork(t *testing.T) {
	blobs := &fakeBlobStore{}
	proofs := &fakeProofStore{proofID: uuid.New()}
	s := NewSubmission(blobs, proofs, nil)

	in := validInput()
	in.TransactionID = "abcd"

	_, err := s.Run(context.Background(), in)
	require.ErrorIs(t, err, ErrInvalidTransactionID)
	assert.Equal(t, 0, blobs.uploads, "validation failure must not trigger an upload")
	assert.Equal(t, 0, proofs.creates, "validation failure must not trigger a submission")
	assert.Equal(t, StateFailed, s.State(), "workflow must report the failure")
	assert.ErrorIs(t, s.Err(), ErrValidation)
}

func TestRunSuccess(t *testing.T) {
	wantProofID := uuid.New()
	blobs := &fakeBlobStore{handle: storage.Handle{PublicID: "shots/abc", SecureURL: "https://cdn.example.com/shots/abc.jpg"}}
	proofs := &fakeProofStore{proofID: wantProofID}
	caches := &fakeInvalidator{}
	s := NewSubmission(blobs, proofs, caches, "my-payment-proofs")

	proofID, err := s.Run(context.Background(), validInput())
	require.NoError(t, err)
	assert.Equal(t, wantProofID, proofID)
	assert.Equal(t, StateSucceeded, s.State())
	assert.Equal(t, 1, blobs.uploads)
	assert.Equal(t, 1, proofs.creates)
	assert.Equal(t, blobs.handle, proofs.lastHandle)
	assert.Equal(t, 100, s.Progress(), "progress ends at 100 after the payload is consumed")
	assert.Equal(t, 1, caches.bumps["my-payment-proofs"], "proof-list cache invalidated exactly once")
}

func TestRunTrimsTransactionID(t *testing.T) {
	blobs := &fakeBlobStore{handle: storage.Handle{PublicID: "k", SecureURL: "u"}}
	proofs := &fakeProofStore{proofID: uuid.New()}
	s := NewSubmission(blobs, proofs, nil)

	in := validInput()
	in.TransactionID = "  TXN1234567  "

	_, err := s.Run(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "TXN1234567", proofs.lastTransactionID)
}

func TestRunUploadFailure(t *testing.T) {
	blobs := &fakeBlobStore{err: errors.New("bucket unreachable")}
	proofs := &fakeProofStore{proofID: uuid.New()}
	s := NewSubmission(blobs, proofs, nil)

	_, err := s.Run(context.Background(), validInput())
	require.ErrorIs(t, err, ErrUpload)
	assert.Equal(t, 0, proofs.creates, "no submission after a failed upload")
	assert.Equal(t, StateFailed, s.State())
	assert.ErrorIs(t, s.Err(), ErrUpload)
}

func TestRunSubmissionFailureCarriesRemoteMessage(t *testing.T) {
	blobs := &fakeBlobStore{handle: storage.Handle{PublicID: "k", SecureURL: "u"}}
	proofs := &fakeProofStore{err: errors.New("permission denied")}
	caches := &fakeInvalidator{}
	s := NewSubmission(blobs, proofs, caches, "my-payment-proofs")

	_, err := s.Run(context.Background(), validInput())
	require.ErrorIs(t, err, ErrSubmission)
	assert.Contains(t, err.Error(), "permission denied")
	assert.Equal(t, StateFailed, s.State())
	assert.Equal(t, 0, caches.bumps["my-payment-proofs"], "no invalidation without a successful submission")
}

func TestRunRejectsConcurrentSubmission(t *testing.T) {
	blobs := &fakeBlobStore{handle: storage.Handle{PublicID: "k", SecureURL: "u"}, block: make(chan struct{})}
	proofs := &fakeProofStore{proofID: uuid.New()}
	s := NewSubmission(blobs, proofs, nil)

	done := make(chan error, 1)
	go func() {
		_, err := s.Run(context.Background(), validInput())
		done <- err
	}()

	// Wait for the first attempt to reach the blocked upload.
	for s.State() != StateUploading {
		time.Sleep(time.Millisecond)
	}

	_, err := s.Run(context.Background(), validInput())
	assert.ErrorIs(t, err, ErrSubmissionInFlight)

	close(blobs.block)
	require.NoError(t, <-done)
	assert.Equal(t, 1, proofs.creates, "only the first attempt may submit")
}

func TestRunWithoutCollaborators(t *testing.T) {
	s := NewSubmission(nil, nil, nil)
	_, err := s.Run(context.Background(), validInput())
	assert.ErrorIs(t, err, ErrNotAvailable)
	// A precondition failure never starts the attempt, so no failed state.
	assert.Equal(t, StateIdle, s.State())
}

func TestRetryAfterFailureRevalidates(t *testing.T) {
	blobs := &fakeBlobStore{handle: storage.Handle{PublicID: "k", SecureURL: "u"}}
	proofs := &fakeProofStore{proofID: uuid.New()}
	s := NewSubmission(blobs, proofs, nil)

	in := validInput()
	in.TransactionID = "abcd"
	_, err := s.Run(context.Background(), in)
	require.ErrorIs(t, err, ErrInvalidTransactionID)
	assert.Equal(t, StateFailed, s.State())

	// Still-bad input fails again without touching the network.
	in.TransactionID = "xy"
	_, err = s.Run(context.Background(), in)
	require.ErrorIs(t, err, ErrInvalidTransactionID)
	assert.Equal(t, 0, blobs.uploads)

	// Corrected input goes through.
	in.TransactionID = "TXN9876543"
	_, err = s.Run(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, StateSucceeded, s.State())
}

func TestStateString(t *testing.T) {
	for state, want := range map[State]string{
		StateIdle:       "idle",
		StateValidating: "validating",
		StateUploading:  "uploading",
		StateSubmitting: "submitting",
		StateSucceeded:  "succeeded",
		StateFailed:     "failed",
		State(99):       "unknown",
	} {
		if got := state.String(); got != want {
			t.Fatalf("State(%d).String() = %q, want %q", state, got, want)
		}
	}
}

func TestSniffedContentType(t *testing.T) {
	// A payload with a PNG magic number and no declared type passes; plain
	// text does not.
	png := append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0}, 64)...)
	in := validInput()
	in.ContentType = ""
	in.Screenshot = png
	assert.NoError(t, Validate(in))

	in.Screenshot = []byte(strings.Repeat("just text ", 20))
	assert.ErrorIs(t, Validate(in), ErrInvalidFileType)
}
