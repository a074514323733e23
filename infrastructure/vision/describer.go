// Package vision provides HTTP clients for the remote image-description providers.
package vision

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"photo-analyzer-go/domain/provider"
)

// Describer describes an image using a remote provider.
type Describer interface {
	// Provider returns the provider this describer talks to.
	Provider() provider.Provider

	// Describe returns a free-text description of the image.
	Describe(ctx context.Context, image Image, credential string) (string, error)
}

// Image is an encoded image file ready for upload.
type Image struct {
	// Data is the full contents of the source file
	Data []byte

	// MIMEType is the upload content type. Empty means sniff it from Data.
	MIMEType string
}

func (i Image) contentType() string {
	if i.MIMEType != "" {
		return i.MIMEType
	}
	return http.DetectContentType(i.Data)
}

// Common errors for describer calls.
var (
	ErrMissingCredential = errors.New("API key not configured")
	ErrEmptyImage        = errors.New("image data is empty")
	ErrMalformedResponse = errors.New("malformed response body")
)

const maxErrorBody = 512

// RemoteError is a failure reported by a provider, either through the
// HTTP status or through an error payload in the response body.
type RemoteError struct {
	Provider   provider.Provider
	StatusCode int
	Code       string
	Message    string
	Body       string
}

func (e *RemoteError) Error() string {
	detail := e.Message
	if detail == "" {
		detail = truncate(e.Body, maxErrorBody)
	}
	if e.Code != "" {
		detail = fmt.Sprintf("%s (%s)", detail, e.Code)
	}
	return fmt.Sprintf("%s API error %d: %s", e.Provider.ShortName(), e.StatusCode, detail)
}

// RateLimited reports whether the provider throttled the request.
func (e *RemoteError) RateLimited() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.Code == "rate_limit_exceeded"
}

// QuotaExhausted reports whether the account behind the key ran out of quota.
func (e *RemoteError) QuotaExhausted() bool {
	return e.Code == "insufficient_quota"
}

// errorPayload covers the error shapes the providers use:
// {"error": {"message", "type", "code"}}, {"error": "text"} and {"message": "text"}.
type errorPayload struct {
	Error   json.RawMessage `json:"error"`
	Message string          `json:"message"`
}

type errorObject struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Code    any    `json:"code"`
}

// parseErrorPayload extracts a code and message from an error body.
// found is false when the body carries no error marker at all. Empty
// markers such as "error": "" or "error": {} do not count as errors.
func parseErrorPayload(body []byte) (code, message string, found bool) {
	var payload errorPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", "", false
	}

	raw := strings.TrimSpace(string(payload.Error))
	switch {
	case raw == "" || raw == "null" || raw == "false":
		return "", payload.Message, false
	case strings.HasPrefix(raw, "{"):
		var obj errorObject
		if err := json.Unmarshal(payload.Error, &obj); err != nil {
			return "", raw, true
		}
		code = stringify(obj.Code)
		if code == "" {
			code = obj.Type
		}
		if code == "" && strings.TrimSpace(obj.Message) == "" {
			return "", payload.Message, false
		}
		return code, obj.Message, true
	case strings.HasPrefix(raw, "\""):
		var text string
		if err := json.Unmarshal(payload.Error, &text); err != nil {
			return "", raw, true
		}
		if strings.TrimSpace(text) == "" {
			return "", payload.Message, false
		}
		return "", text, true
	default:
		return "", raw, true
	}
}

func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return fmt.Sprintf("%g", t)
	default:
		return fmt.Sprint(t)
	}
}

// execute runs req and returns the body of a 2xx response.
// Non-2xx responses become *RemoteError.
func execute(client *http.Client, req *http.Request, p provider.Provider) ([]byte, error) {
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		code, message, _ := parseErrorPayload(body)
		return nil, &RemoteError{
			Provider:   p,
			StatusCode: resp.StatusCode,
			Code:       code,
			Message:    message,
			Body:       string(body),
		}
	}

	return body, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
