package errors

import "errors"

// Pipeline errors
var (
	ErrEmptyTranscript          = errors.New("transcript is empty or contains no usable text")
	ErrSummarizationUnavailable = errors.New("summarization unavailable")
	ErrNoProviders              = errors.New("no summarization providers configured")
)

// Configuration errors
var (
	ErrInvalidChunkSize  = errors.New("max words per chunk must be positive")
	ErrInvalidConfidence = errors.New("min action confidence must be in [0,1]")
	ErrInvalidFormat     = errors.New("unsupported output format")
)
