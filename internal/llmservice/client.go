package llmservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"wiki-chat/internal/config"
	"wiki-chat/internal/helper"
	"wiki-chat/internal/models"

	"github.com/rs/zerolog/log"
)

// Client sends single chat-completion requests. It never retries.
type Client struct {
	cfg        config.LLMConfig
	httpClient *http.Client
}

func NewClient(cfg *config.LLMConfig) *Client {
	return &Client{
		cfg:        *cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

// Complete posts prompt as a single user message and returns the generated
// text exactly as the service sent it.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	payload := models.ChatRequest{
		Model:             c.cfg.Model,
		Messages:          []models.ChatMessage{{Role: models.RoleUser, Content: prompt}},
		MaxTokens:         c.cfg.MaxTokens,
		Temperature:       c.cfg.Temperature,
		TopP:              c.cfg.TopP,
		TopK:              c.cfg.TopK,
		RepetitionPenalty: c.cfg.RepetitionPenalty,
		Stop:              c.cfg.Stop,
		Stream:            false,
	}
	if payload.Stop == nil {
		payload.Stop = []string{}
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}

	requestID := helper.NewRequestID()
	req.Header.Set("Authorization", "Bearer "+strings.TrimPrefix(c.cfg.Key, "Bearer "))
	req.Header.Set("Content-Type", "application/json")
	if requestID != "" {
		req.Header.Set(models.RequestIDHdr, requestID)
	}

	logger := log.With().Str("request_id", requestID).Logger()
	logger.Debug().Str("model", c.cfg.Model).Int("prompt_len", len(prompt)).Msg("Sending completion request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &TransportError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &TransportError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logger.Warn().Int("status", resp.StatusCode).Msg("Completion endpoint returned an error")
		return "", &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	if e := logger.Debug(); e.Enabled() {
		e.Msgf("API response:\n%s", helper.PrettyJSON(body))
	}

	return extractContent(body)
}

func extractContent(body []byte) (string, error) {
	var envelope models.ChatResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		return "", fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	if len(envelope.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices", ErrMalformedResponse)
	}
	msg := envelope.Choices[0].Message
	if msg == nil || msg.Content == nil {
		return "", fmt.Errorf("%w: choices[0].message.content missing", ErrMalformedResponse)
	}
	return *msg.Content, nil
}
