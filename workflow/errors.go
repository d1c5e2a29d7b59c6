package workflow

import (
	"errors"
	"fmt"
)

// ErrValidation is the parent of every input-validation failure. Nothing
// wrapped in it ever reaches the network.
var ErrValidation = errors.New("validation failed")

var (
	ErrInvalidFileType      = fmt.Errorf("%w: screenshot must be an image file", ErrValidation)
	ErrFileTooLarge         = fmt.Errorf("%w: screenshot must be 5 MB or smaller", ErrValidation)
	ErrInvalidTransactionID = fmt.Errorf("%w: transaction reference must be at least 5 characters", ErrValidation)

	ErrUpload             = errors.New("screenshot upload failed")
	ErrSubmission         = errors.New("payment proof submission failed")
	ErrNotAvailable       = errors.New("payment service is not available")
	ErrSubmissionInFlight = errors.New("a submission is already in progress")
)
