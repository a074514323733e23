package vision

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"photo-analyzer-go/domain/analysis"
	"photo-analyzer-go/domain/provider"
)

// ImageDescriberConfig contains configuration for the secondary provider client.
type ImageDescriberConfig struct {
	BaseURL string
	Timeout time.Duration
	Prompt  string
}

// DefaultImageDescriberConfig returns default secondary provider configuration.
func DefaultImageDescriberConfig() *ImageDescriberConfig {
	return &ImageDescriberConfig{
		BaseURL: "https://imagedescriber.online/api/openapi-v2",
		Timeout: 60 * time.Second,
		Prompt:  DefaultPrompt,
	}
}

// ImageDescriberClient implements Describer against a multipart describe-image endpoint.
type ImageDescriberClient struct {
	config     *ImageDescriberConfig
	httpClient *http.Client
	logger     *slog.Logger
}

// NewImageDescriberClient creates a new secondary provider client.
func NewImageDescriberClient(config *ImageDescriberConfig, logger *slog.Logger) *ImageDescriberClient {
	if config == nil {
		config = DefaultImageDescriberConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ImageDescriberClient{
		config:     config,
		httpClient: &http.Client{Timeout: config.Timeout},
		logger:     logger.With("provider", provider.Secondary.String()),
	}
}

// Provider returns provider.Secondary.
func (c *ImageDescriberClient) Provider() provider.Provider {
	return provider.Secondary
}

// Describe uploads the raw image bytes with the prompt as a form field.
func (c *ImageDescriberClient) Describe(ctx context.Context, image Image, credential string) (string, error) {
	if credential == "" {
		return "", fmt.Errorf("%s: %w", provider.Secondary.ShortName(), ErrMissingCredential)
	}
	if len(image.Data) == 0 {
		return "", ErrEmptyImage
	}

	body, contentType, err := buildMultipart(image, promptOrDefault(c.config.Prompt))
	if err != nil {
		return "", fmt.Errorf("failed to build request body: %w", err)
	}

	requestURL := strings.TrimRight(c.config.BaseURL, "/") + "/describe-image"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, requestURL, body)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+credential)

	start := time.Now()
	respBody, err := execute(c.httpClient, req, provider.Secondary)
	if err != nil {
		return "", err
	}
	c.logger.Debug("Describe request completed", "bytes", len(respBody), "elapsed", time.Since(start))

	return parseDescriberResponse(respBody)
}

func buildMultipart(image Image, prompt string) (*bytes.Buffer, string, error) {
	buf := new(bytes.Buffer)
	w := multipart.NewWriter(buf)

	mimeType := image.contentType()
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename="%s"`, uploadName(mimeType)))
	header.Set("Content-Type", mimeType)

	part, err := w.CreatePart(header)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(image.Data); err != nil {
		return nil, "", err
	}
	if err := w.WriteField("prompt", prompt); err != nil {
		return nil, "", err
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf, w.FormDataContentType(), nil
}

func uploadName(mimeType string) string {
	switch mimeType {
	case "image/png":
		return "image.png"
	case "image/gif":
		return "image.gif"
	case "image/bmp":
		return "image.bmp"
	case "image/webp":
		return "image.webp"
	case "image/tiff":
		return "image.tiff"
	default:
		return "image.jpg"
	}
}

// parseDescriberResponse extracts the description from the first matching key
// (description, data.content, data.description, result). Bodies with none of
// them are re-serialized whole.
func parseDescriberResponse(body []byte) (string, error) {
	var result map[string]any
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	if code, message, found := parseErrorPayload(body); found {
		return "", &RemoteError{Provider: provider.Secondary, StatusCode: http.StatusOK, Code: code, Message: message, Body: string(body)}
	}
	if success, ok := result["success"].(bool); ok && !success {
		message, _ := result["message"].(string)
		return "", &RemoteError{Provider: provider.Secondary, StatusCode: http.StatusOK, Message: message, Body: string(body)}
	}

	if text, ok := extractDescription(result); ok {
		return analysis.Normalize(text), nil
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(result); err != nil {
		return "", fmt.Errorf("failed to serialize response: %w", err)
	}
	return strings.TrimSpace(buf.String()), nil
}

func extractDescription(result map[string]any) (string, bool) {
	data, _ := result["data"].(map[string]any)
	candidates := []any{
		result["description"],
		data["content"],
		data["description"],
		result["result"],
	}
	for _, c := range candidates {
		if s, ok := c.(string); ok && strings.TrimSpace(s) != "" {
			return s, true
		}
	}
	return "", false
}

var _ Describer = (*ImageDescriberClient)(nil)
