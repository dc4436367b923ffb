package llm

import (
	"errors"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
)

var (
	// ErrRateLimited maps the gateway's HTTP 429: the caller should slow
	// down and try again shortly.
	ErrRateLimited = errors.New("ai gateway rate limit reached")

	// ErrNoCredits maps the gateway's HTTP 402: the workspace ran out of
	// AI credits and needs a top-up before new requests succeed.
	ErrNoCredits = errors.New("ai credits exhausted")
)

// mapAPIError translates gateway failures into the error taxonomy exposed
// to handlers. Unknown failures pass through unchanged.
func mapAPIError(err error) error {
	if err == nil {
		return nil
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.HTTPStatusCode {
		case http.StatusTooManyRequests:
			return ErrRateLimited
		case http.StatusPaymentRequired:
			return ErrNoCredits
		}
		if apiErr.Code == "insufficient_quota" {
			return ErrNoCredits
		}
	}

	return err
}
