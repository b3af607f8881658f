package domain

import (
	"context"
	"io"
	"net/http"
)

const ExchangeViewed = "viewed"

type ViewRequest struct {
	VideoID string `form:"id"`
	Range   string `form:"-"`
}

type VideoRef struct {
	ID string `json:"id"`
}

// ViewedEvent is the payload broadcast on the viewed exchange:
// {"video":{"id":"<videoId>"}}
type ViewedEvent struct {
	Video VideoRef `json:"video"`
}

func NewViewedEvent(videoID string) *ViewedEvent {
	return &ViewedEvent{
		Video: VideoRef{ID: videoID},
	}
}

// VideoStream is an open downstream response. Body must be closed by the
// caller once the relay is done.
type VideoStream struct {
	StatusCode int
	Header     http.Header
	Body       io.ReadCloser
}

type VideoStorage interface {
	Fetch(ctx context.Context, req *ViewRequest) (*VideoStream, error)
}

type ViewVideoUseCase interface {
	Execute(ctx context.Context, req *ViewRequest) (*VideoStream, error)
}
