package repository

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/lam0glia/video-gateway/domain"
)

const videoPath = "/video"

type video struct {
	client  *http.Client
	baseURL string
}

// Fetch issues a streaming GET to video storage. The returned body is not
// read here; non-2xx responses are drained, closed and reported as
// *domain.DownstreamError carrying the status code.
func (r *video) Fetch(ctx context.Context, req *domain.ViewRequest) (*domain.VideoStream, error) {
	query := url.Values{}
	query.Set("id", req.VideoID)

	httpReq, err := http.NewRequestWithContext(
		ctx,
		http.MethodGet,
		r.baseURL+videoPath+"?"+query.Encode(),
		nil,
	)
	if err != nil {
		return nil, &domain.DownstreamError{Err: fmt.Errorf("build request: %w", err)}
	}

	if req.Range != "" {
		httpReq.Header.Set("Range", req.Range)
	}

	resp, err := r.client.Do(httpReq)
	if err != nil {
		return nil, &domain.DownstreamError{
			Timeout: isTimeout(err),
			Err:     err,
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		resp.Body.Close()

		return nil, &domain.DownstreamError{StatusCode: resp.StatusCode}
	}

	return &domain.VideoStream{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       resp.Body,
	}, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error

	return errors.As(err, &netErr) && netErr.Timeout()
}

// NewHTTPClient builds a client without an overall timeout, so long bodies
// can stream; dialing and waiting for headers are bounded instead.
func NewHTTPClient(dialTimeout, headerTimeout time.Duration) *http.Client {
	dialer := &net.Dialer{
		Timeout:   dialTimeout,
		KeepAlive: 30 * time.Second,
	}

	return &http.Client{
		Transport: &http.Transport{
			Proxy:                 http.ProxyFromEnvironment,
			DialContext:           dialer.DialContext,
			ResponseHeaderTimeout: headerTimeout,
			MaxIdleConnsPerHost:   64,
			IdleConnTimeout:       90 * time.Second,
			DisableCompression:    true,
		},
	}
}

func NewVideo(client *http.Client, baseURL string) *video {
	return &video{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}
