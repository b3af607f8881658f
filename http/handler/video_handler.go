package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lam0glia/video-gateway/domain"
	"github.com/lam0glia/video-gateway/metrics"
	"github.com/lam0glia/video-gateway/stream"
	"github.com/rs/zerolog"
)

// mirroredHeaders are copied from the video storage response to the client.
var mirroredHeaders = []string{
	"Content-Type",
	"Content-Length",
	"Content-Range",
	"Accept-Ranges",
	"ETag",
	"Last-Modified",
}

type Video struct {
	viewVideo domain.ViewVideoUseCase
	metrics   *metrics.Metrics
}

func (h *Video) Stream(c *gin.Context) {
	var req domain.ViewRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.abort(c, http.StatusBadRequest)
		return
	}

	req.Range = c.GetHeader("Range")

	ctx := c.Request.Context()
	logger := zerolog.Ctx(ctx).With().Str("video_id", req.VideoID).Logger()

	video, err := h.viewVideo.Execute(ctx, &req)
	if err != nil {
		h.abort(c, h.statusFor(err))
		logger.Error().Err(err).Msg("fetch video")
		return
	}

	defer video.Body.Close()

	for _, key := range mirroredHeaders {
		if v := video.Header.Get(key); v != "" {
			c.Header(key, v)
		}
	}

	c.Status(video.StatusCode)
	h.metrics.Requests.WithLabelValues(strconv.Itoa(video.StatusCode)).Inc()

	start := time.Now()

	n, err := stream.Relay(ctx, c.Writer, video.Body)

	h.metrics.RelayedBytes.Add(float64(n))
	h.metrics.RelayDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		// headers are gone already, the client sees a truncated body
		logger.Error().Err(err).Int64("bytes", n).Msg("relay video")
	}
}

func (h *Video) statusFor(err error) int {
	if errors.Is(err, domain.ErrMissingVideoID) {
		return http.StatusBadRequest
	}

	var downstreamErr *domain.DownstreamError
	if !errors.As(err, &downstreamErr) {
		h.metrics.DownstreamErrors.WithLabelValues("unknown").Inc()
		return http.StatusBadGateway
	}

	switch {
	case downstreamErr.StatusCode != 0:
		h.metrics.DownstreamErrors.WithLabelValues("status").Inc()
		return downstreamErr.StatusCode
	case downstreamErr.Timeout:
		h.metrics.DownstreamErrors.WithLabelValues("timeout").Inc()
		return http.StatusGatewayTimeout
	default:
		h.metrics.DownstreamErrors.WithLabelValues("transport").Inc()
		return http.StatusBadGateway
	}
}

func (h *Video) abort(c *gin.Context, status int) {
	h.metrics.Requests.WithLabelValues(strconv.Itoa(status)).Inc()
	c.AbortWithStatus(status)
}

func NewVideo(
	viewVideo domain.ViewVideoUseCase,
	m *metrics.Metrics,
) *Video {
	return &Video{
		viewVideo: viewVideo,
		metrics:   m,
	}
}
