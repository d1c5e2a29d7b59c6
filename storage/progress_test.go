package storage

import (
	"bytes"
	"io"
	"testing"
)

func TestProgressReaderReportsMonotonicPercentages(t *testing.T) {
	data := bytes.Repeat([]byte{0x5A}, 1000)

	var reported []int
	blob := FromBytes(data, "image/png").WithUploadProgress(func(pct int) {
		reported = append(reported, pct)
	})

	buf := make([]byte, 64)
	r := blob.Reader()
	for {
		if _, err := r.Read(buf); err == io.EOF {
			break
		} else if err != nil {
			t.Fatalf("unexpected read error: %v", err)
		}
	}

	if len(reported) == 0 {
		t.Fatal("expected progress callbacks")
	}
	last := -1
	for _, pct := range reported {
		if pct < last {
			t.Fatalf("progress went backwards: %v", reported)
		}
		if pct < 0 || pct > 100 {
			t.Fatalf("percentage out of range: %d", pct)
		}
		last = pct
	}
	if last != 100 {
		t.Fatalf("final reported percentage = %d, want 100", last)
	}
}

func TestProgressReaderSkipsDuplicatePercentages(t *testing.T) {
	data := bytes.Repeat([]byte{0x01}, 100)

	var reported []int
	blob := FromBytes(data, "image/png").WithUploadProgress(func(pct int) {
		reported = append(reported, pct)
	})

	// Single-byte reads produce one callback per whole percent, not one
	// per read.
	buf := make([]byte, 1)
	r := blob.Reader()
	for {
		if _, err := r.Read(buf); err == io.EOF {
			break
		}
	}

	seen := make(map[int]bool)
	for _, pct := range reported {
		if seen[pct] {
			t.Fatalf("percentage %d reported twice: %v", pct, reported)
		}
		seen[pct] = true
	}
}

func TestBlobWithoutObserverStreamsUntouched(t *testing.T) {
	data := []byte("screenshot bytes")
	blob := FromBytes(data, "image/jpeg")

	out, err := io.ReadAll(blob.Reader())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(out, data) {
		t.Fatal("payload corrupted on read")
	}
}

func TestWithUploadProgressDoesNotMutateOriginal(t *testing.T) {
	blob := FromBytes([]byte("abc"), "image/png")
	observed := blob.WithUploadProgress(func(int) {})

	if blob.onProgress != nil {
		t.Fatal("original blob gained an observer")
	}
	if observed.onProgress == nil {
		t.Fatal("variant lost its observer")
	}
	if observed.Size() != blob.Size() || observed.ContentType() != blob.ContentType() {
		t.Fatal("variant diverged from original payload")
	}
}
