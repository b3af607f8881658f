package handler

type Handler struct {
	Video *Video
}

func NewHandler(
	Video *Video,
) *Handler {
	return &Handler{
		Video: Video,
	}
}
