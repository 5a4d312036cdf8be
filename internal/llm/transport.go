package llm

import (
	"context"
	"errors"
	"net"
	"net/url"
)

// WrapTransport marks err as a TransportError when it was raised below the HTTP layer.
// Context errors are returned untouched so callers can still detect deadlines.
func WrapTransport(provider string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return err
	}

	var urlErr *url.Error
	var netErr net.Error
	if errors.As(err, &urlErr) || errors.As(err, &netErr) {
		return &TransportError{Provider: provider, Err: err}
	}
	return err
}
