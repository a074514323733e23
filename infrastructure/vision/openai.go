package vision

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"photo-analyzer-go/domain/provider"
)

// OpenAIConfig contains configuration for the primary provider client.
type OpenAIConfig struct {
	BaseURL   string
	Model     string
	MaxTokens int
	// Timeout of zero leaves the HTTP client without a deadline.
	Timeout time.Duration
	Prompt  string
}

// DefaultOpenAIConfig returns default primary provider configuration.
func DefaultOpenAIConfig() *OpenAIConfig {
	return &OpenAIConfig{
		BaseURL:   "https://api.openai.com/v1",
		Model:     "gpt-4o",
		MaxTokens: 1500,
		Timeout:   0,
		Prompt:    DefaultPrompt,
	}
}

// OpenAIClient implements Describer against a chat-completions vision endpoint.
type OpenAIClient struct {
	config     *OpenAIConfig
	httpClient *http.Client
	logger     *slog.Logger
}

// NewOpenAIClient creates a new primary provider client.
func NewOpenAIClient(config *OpenAIConfig, logger *slog.Logger) *OpenAIClient {
	if config == nil {
		config = DefaultOpenAIConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &OpenAIClient{
		config:     config,
		httpClient: &http.Client{Timeout: config.Timeout},
		logger:     logger.With("provider", provider.Primary.String()),
	}
}

type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens,omitempty"`
}

type chatMessage struct {
	Role    string        `json:"role"`
	Content []contentPart `json:"content"`
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}

// Provider returns provider.Primary.
func (c *OpenAIClient) Provider() provider.Provider {
	return provider.Primary
}

// Describe sends the image as a base64 data URL together with the prompt.
func (c *OpenAIClient) Describe(ctx context.Context, image Image, credential string) (string, error) {
	if credential == "" {
		return "", fmt.Errorf("%s: %w", provider.Primary.ShortName(), ErrMissingCredential)
	}
	if len(image.Data) == 0 {
		return "", ErrEmptyImage
	}

	dataURL := fmt.Sprintf("data:%s;base64,%s", image.contentType(), base64.StdEncoding.EncodeToString(image.Data))
	payload := chatRequest{
		Model: c.config.Model,
		Messages: []chatMessage{{
			Role: "user",
			Content: []contentPart{
				{Type: "text", Text: promptOrDefault(c.config.Prompt)},
				{Type: "image_url", ImageURL: &imageURL{URL: dataURL}},
			},
		}},
		MaxTokens: c.config.MaxTokens,
	}

	reqBody, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	requestURL := strings.TrimRight(c.config.BaseURL, "/") + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, requestURL, bytes.NewReader(reqBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+credential)

	start := time.Now()
	body, err := execute(c.httpClient, req, provider.Primary)
	if err != nil {
		return "", err
	}
	c.logger.Debug("Describe request completed", "bytes", len(body), "elapsed", time.Since(start))

	return parseChatResponse(body)
}

func parseChatResponse(body []byte) (string, error) {
	if code, message, found := parseErrorPayload(body); found {
		return "", &RemoteError{Provider: provider.Primary, StatusCode: http.StatusOK, Code: code, Message: message, Body: string(body)}
	}

	var resp chatResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices in response", ErrMalformedResponse)
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", fmt.Errorf("%w: empty message content", ErrMalformedResponse)
	}
	return content, nil
}

var _ Describer = (*OpenAIClient)(nil)
