package domain

import (
	"errors"
	"fmt"
)

var (
	ErrConfiguration  = errors.New("configuration error")
	ErrConnection     = errors.New("broker connection error")
	ErrDeclaration    = errors.New("exchange declaration error")
	ErrPublish        = errors.New("publish error")
	ErrMissingVideoID = errors.New("missing video id")
)

// DownstreamError reports a failed fetch from video storage. StatusCode is
// zero when no response was received.
type DownstreamError struct {
	StatusCode int
	Timeout    bool
	Err        error
}

func (e *DownstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("video storage responded with status %d", e.StatusCode)
	}

	return fmt.Sprintf("video storage request failed: %s", e.Err)
}

func (e *DownstreamError) Unwrap() error {
	return e.Err
}
