package stream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
)

const relayBufferSize = 32 * 1024

var ErrClientGone = errors.New("client disconnected")

// Relay copies src to dst through a fixed-size buffer, flushing dst after
// every chunk. A slow client blocks the next read from src. Relay stops as
// soon as ctx is done, returning the bytes written so far.
func Relay(ctx context.Context, dst io.Writer, src io.Reader) (int64, error) {
	flusher, _ := dst.(http.Flusher)

	buf := make([]byte, relayBufferSize)

	var written int64

	for {
		if err := ctx.Err(); err != nil {
			return written, fmt.Errorf("%w: %w", ErrClientGone, err)
		}

		n, readErr := src.Read(buf)
		if n > 0 {
			w, err := dst.Write(buf[:n])
			written += int64(w)
			if err != nil {
				return written, fmt.Errorf("write client: %w", err)
			}
			if w != n {
				return written, fmt.Errorf("write client: %w", io.ErrShortWrite)
			}

			if flusher != nil {
				flusher.Flush()
			}
		}

		if readErr == io.EOF {
			return written, nil
		}
		if readErr != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return written, fmt.Errorf("%w: %w", ErrClientGone, ctxErr)
			}

			return written, fmt.Errorf("read video storage: %w", readErr)
		}
	}
}
