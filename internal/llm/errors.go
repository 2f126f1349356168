package llm

import (
	"encoding/json"
	"fmt"
	"time"
)

// ErrRateLimit indicates the provider returned a rate limit error (429).
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	return fmt.Sprintf("rate limited (retry after %s): %v", e.RetryAfter, e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrInvalidResponse indicates the LLM returned content that does not
// conform to the requested schema.
type ErrInvalidResponse struct {
	Content json.RawMessage
	Err     error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("invalid LLM response: %v", e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// ErrProviderUnavailable indicates the provider is down or unreachable.
type ErrProviderUnavailable struct {
	Err error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("LLM provider unavailable: %v", e.Err)
	}
	return "LLM provider unavailable"
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// ErrMaxTokensExceeded indicates the response was cut off at MaxTokens.
// A truncated plan is never valid JSON, so providers report this instead
// of a schema failure.
type ErrMaxTokensExceeded struct {
	MaxTokens int
	Content   json.RawMessage
}

func (e *ErrMaxTokensExceeded) Error() string {
	return fmt.Sprintf("LLM response truncated at %d tokens", e.MaxTokens)
}

// ErrRefused indicates the model declined to produce a plan, usually
// because the goal tripped a safety filter. Reason holds whatever
// explanation the provider returned.
type ErrRefused struct {
	Provider string
	Reason   string
}

func (e *ErrRefused) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s refused the request: %s", e.Provider, e.Reason)
	}
	return e.Provider + " refused the request"
}

// checkTruncated returns ErrMaxTokensExceeded when the normalized stop
// reason says generation hit the token limit.
func checkTruncated(stopReason string, req Request, content json.RawMessage) error {
	if stopReason != "max_tokens" {
		return nil
	}
	return &ErrMaxTokensExceeded{MaxTokens: req.MaxTokens, Content: content}
}
