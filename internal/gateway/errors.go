package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	eshika_errors "eshika-chat/pkg/errors"
)

// UpstreamError is the code and message of a failed generation call.
// Generators translate their client's error type into this.
type UpstreamError struct {
	Code    int
	Status  string
	Message string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream error %d %s: %s", e.Code, e.Status, e.Message)
}

// GatewayError carries the friendly reply for a failed turn and the HTTP
// status to answer with. The raw upstream payload is never included.
type GatewayError struct {
	Status int
	Reply  string
	Err    error
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("gateway: %d: %v", e.Status, e.Err)
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}

const (
	replyQuota        = "I'm a bit overwhelmed right now (Quota Exceeded). Please try again in a minute or two! 😅"
	replyAPIKey       = "There's an issue with my API key connection. Please check the configuration. 🔑"
	replyBadRequest   = "I didn't understand that request. It might be too long or contains unsupported content. 🧩"
	replyTimeout      = "I took too long to think about that one. Please try again in a moment. ⏳"
	replyModelMissing = "I couldn't find the model \"%s\". Please select a different one in settings. 🔍"
	replyBrainError   = "Brain Error (%s): %s 🧩"
	replyEmpty        = "I couldn't generate a response."
)

// MapError turns a generator failure into a GatewayError. The order of checks
// matters: quota before key problems, key problems before status-only cases.
func MapError(err error, model string) *GatewayError {
	if err == nil {
		return nil
	}

	var gwErr *GatewayError
	if errors.As(err, &gwErr) {
		return gwErr
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return &GatewayError{
			Status: http.StatusGatewayTimeout,
			Reply:  replyTimeout,
			Err:    fmt.Errorf("%w: %v", eshika_errors.ErrGatewayTimeout, err),
		}
	}

	var up *UpstreamError
	if !errors.As(err, &up) {
		return &GatewayError{
			Status: http.StatusInternalServerError,
			Reply:  fmt.Sprintf(replyBrainError, "Unknown", "Something went wrong connection-wise."),
			Err:    err,
		}
	}

	status := up.Code
	if status < 400 || status > 599 {
		status = http.StatusInternalServerError
	}

	switch {
	case up.Code == http.StatusTooManyRequests:
		return &GatewayError{Status: status, Reply: replyQuota, Err: err}
	case strings.Contains(strings.ToLower(up.Message), "api key"),
		up.Code == http.StatusUnauthorized, up.Code == http.StatusForbidden:
		return &GatewayError{Status: status, Reply: replyAPIKey, Err: err}
	case up.Code == http.StatusNotFound:
		return &GatewayError{Status: status, Reply: fmt.Sprintf(replyModelMissing, model), Err: err}
	case up.Code == http.StatusBadRequest:
		return &GatewayError{Status: status, Reply: replyBadRequest, Err: err}
	default:
		code := "Unknown"
		if up.Code != 0 {
			code = fmt.Sprintf("%d", up.Code)
		}
		msg := up.Message
		if msg == "" {
			msg = "Something went wrong connection-wise."
		}
		return &GatewayError{Status: status, Reply: fmt.Sprintf(replyBrainError, code, msg), Err: err}
	}
}
