package openai

import (
	"context"
	"errors"
	"net/http"
	"os"

	"github.com/voxkit/voxkit/pkg/provider"

	"github.com/openai/openai-go/v3"
)

func convertError(err error) error {
	var apierr *openai.Error

	if errors.As(err, &apierr) {
		switch apierr.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return &provider.AuthError{
				Provider: "openai",
				Message:  apierr.Message,
			}

		case http.StatusTooManyRequests:
			return &provider.RateLimitError{
				Provider: "openai",
			}
		}

		return &provider.RequestError{
			Provider: "openai",
			Status:   apierr.StatusCode,
			Message:  apierr.Message,
		}
	}

	if errors.Is(err, context.DeadlineExceeded) || os.IsTimeout(err) {
		return &provider.TimeoutError{
			Provider: "openai",
		}
	}

	return err
}
