package use_case

import (
	"context"
	"strings"

	"github.com/lam0glia/video-gateway/domain"
)

type viewVideo struct {
	storage    domain.VideoStorage
	dispatcher domain.ViewDispatcher
}

// Execute opens the downstream stream and then dispatches the viewed event,
// whether or not the fetch succeeded. The event outcome never reaches the
// caller.
func (uc *viewVideo) Execute(ctx context.Context, req *domain.ViewRequest) (*domain.VideoStream, error) {
	if strings.TrimSpace(req.VideoID) == "" {
		return nil, domain.ErrMissingVideoID
	}

	stream, err := uc.storage.Fetch(ctx, req)

	uc.dispatcher.Dispatch(domain.NewViewedEvent(req.VideoID))

	return stream, err
}

func NewViewVideo(
	storage domain.VideoStorage,
	dispatcher domain.ViewDispatcher,
) *viewVideo {
	return &viewVideo{
		storage:    storage,
		dispatcher: dispatcher,
	}
}
