// Package predict asks an OpenAI-compatible model for a next-day signal
// based on the day's aggregates. Results are advisory and never block the
// ingestion pipeline.
package predict

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/floorsight/backend/internal/contracts"
	"github.com/floorsight/backend/pkg/config"
	"github.com/floorsight/backend/pkg/logger"
)

// Signal is the model's read on the next session.
type Signal struct {
	Direction  string  `json:"direction"`
	Confidence float64 `json:"confidence"`
	Rationale  string  `json:"rationale"`
}

// Client calls a chat-completion endpoint with a market digest.
type Client struct {
	client  *resty.Client
	logger  *logger.Logger
	model   string
	enabled bool
}

// NewClient creates a prediction client. When prediction is disabled in
// config the client is a no-op and Predict returns ErrDisabled.
func NewClient(cfg *config.Config, log *logger.Logger) *Client {
	client := resty.New()
	client.SetBaseURL(cfg.Predict.BaseURL)
	client.SetTimeout(60 * time.Second)
	client.SetHeader("Authorization", "Bearer "+cfg.Predict.APIKey)

	return &Client{
		client:  client,
		logger:  log,
		model:   cfg.Predict.Model,
		enabled: cfg.Predict.Enabled,
	}
}

// ErrDisabled is returned when prediction is turned off in configuration.
var ErrDisabled = fmt.Errorf("prediction is disabled")

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Predict sends the day's stock summaries and high-alert broker positions
// to the model and parses the returned JSON signal.
func (c *Client) Predict(ctx context.Context, summaries []*contracts.StockDailySummary, alerts []*contracts.BrokerPosition) (*Signal, error) {
	if !c.enabled {
		return nil, ErrDisabled
	}

	prompt := buildPrompt(summaries, alerts)

	var result chatResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(chatRequest{
			Model: c.model,
			Messages: []chatMessage{
				{Role: "system", Content: systemPrompt},
				{Role: "user", Content: prompt},
			},
		}).
		SetResult(&result).
		Post("/chat/completions")
	if err != nil {
		return nil, fmt.Errorf("prediction request failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("prediction request returned status %d", resp.StatusCode())
	}
	if len(result.Choices) == 0 {
		return nil, fmt.Errorf("prediction response has no choices")
	}

	signal, err := parseSignal(result.Choices[0].Message.Content)
	if err != nil {
		return nil, err
	}

	c.logger.WithFields(map[string]interface{}{
		"direction":  signal.Direction,
		"confidence": signal.Confidence,
	}).Info("Prediction received")

	return signal, nil
}

const systemPrompt = `You are a market analyst for the Nepal Stock Exchange.
Given daily stock summaries and broker positions flagged for unusually large
net flows, respond with a single JSON object:
{"direction": "UP"|"DOWN"|"FLAT", "confidence": 0.0-1.0, "rationale": "..."}`

// buildPrompt renders a compact digest. Only the top rows are included to
// keep the request within model context limits.
func buildPrompt(summaries []*contracts.StockDailySummary, alerts []*contracts.BrokerPosition) string {
	var b strings.Builder

	b.WriteString("Stock summaries:\n")
	for i, s := range summaries {
		if i >= 30 {
			break
		}
		fmt.Fprintf(&b, "- %s %s open=%.2f close=%.2f vol=%.0f amount=%.0f\n",
			s.Symbol, s.Date, s.OpenPrice, s.ClosePrice, s.Volume, s.TotalAmount)
	}

	b.WriteString("\nHigh-alert broker positions:\n")
	if len(alerts) == 0 {
		b.WriteString("- none\n")
	}
	for i, p := range alerts {
		if i >= 20 {
			break
		}
		fmt.Fprintf(&b, "- broker %s on %s: net=%.0f activity=%s score=%.1f\n",
			p.BrokerCode, p.Symbol, p.NetAmount, p.ActivityType, p.AccumulationScore)
	}

	return b.String()
}

// parseSignal extracts the JSON object from the model reply, tolerating
// markdown fences around it.
func parseSignal(content string) (*Signal, error) {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON object in prediction response")
	}

	var signal Signal
	if err := json.Unmarshal([]byte(content[start:end+1]), &signal); err != nil {
		return nil, fmt.Errorf("parse prediction response: %w", err)
	}
	return &signal, nil
}
