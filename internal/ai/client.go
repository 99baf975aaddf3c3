package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/humanos-app/humanos-backend/internal/config"
)

var (
	ErrUnavailable = errors.New("no AI provider available")
	ErrNoToolCall  = errors.New("model returned no structured tool call")
)

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Tool describes a function-call schema the model must answer with.
type Tool struct {
	Type     string       `json:"type"`
	Function ToolFunction `json:"function"`
}

type ToolFunction struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Parameters  json.RawMessage `json:"parameters"`
}

type chatRequest struct {
	Model       string      `json:"model"`
	Messages    []Message   `json:"messages"`
	Temperature float64     `json:"temperature,omitempty"`
	Tools       []Tool      `json:"tools,omitempty"`
	ToolChoice  interface{} `json:"tool_choice,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content   string `json:"content"`
			ToolCalls []struct {
				Function struct {
					Name      string `json:"name"`
					Arguments string `json:"arguments"`
				} `json:"function"`
			} `json:"tool_calls"`
		} `json:"message"`
	} `json:"choices"`
}

// Client talks to OpenAI-compatible chat-completion endpoints.
// GLM is the primary provider, DeepSeek the fallback.
type Client struct {
	cfg  *config.Config
	http *http.Client
}

func NewClient(cfg *config.Config) *Client {
	timeout := cfg.AITimeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: timeout},
	}
}

// Complete sends a free-text chat completion and returns the assistant text.
func (c *Client) Complete(ctx context.Context, systemPrompt string, messages []Message) (string, error) {
	resp, err := c.completeAny(ctx, systemPrompt, messages, nil)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no response from AI")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// CompleteWithTool forces the model through a function-call schema and returns
// the raw JSON arguments of the named call. A response without the call is an
// ErrNoToolCall; the caller decides whether a fallback applies.
func (c *Client) CompleteWithTool(ctx context.Context, systemPrompt, userPrompt string, tool Tool) (json.RawMessage, error) {
	messages := []Message{{Role: "user", Content: userPrompt}}
	resp, err := c.completeAny(ctx, systemPrompt, messages, &tool)
	if err != nil {
		return nil, err
	}
	if len(resp.Choices) == 0 {
		return nil, ErrNoToolCall
	}

	for _, call := range resp.Choices[0].Message.ToolCalls {
		if call.Function.Name == tool.Function.Name {
			return json.RawMessage(call.Function.Arguments), nil
		}
	}

	// Some providers ignore tool_choice and inline the JSON in content.
	if args := extractJSONObject(resp.Choices[0].Message.Content); args != nil {
		return args, nil
	}

	return nil, ErrNoToolCall
}

func (c *Client) completeAny(ctx context.Context, systemPrompt string, messages []Message, tool *Tool) (*chatResponse, error) {
	if c.cfg.GLMAPIKey != "" {
		resp, err := c.completeWithProvider(ctx, c.cfg.GLMAPIURL, c.cfg.GLMAPIKey, c.cfg.GLMModel, systemPrompt, messages, tool)
		if err == nil {
			return resp, nil
		}
		slog.Warn("GLM completion failed", "error", err)
	}

	if c.cfg.DeepSeekAPIKey != "" {
		resp, err := c.completeWithProvider(ctx, c.cfg.DeepSeekAPIURL, c.cfg.DeepSeekAPIKey, c.cfg.DeepSeekModel, systemPrompt, messages, tool)
		if err == nil {
			return resp, nil
		}
		slog.Warn("DeepSeek completion failed", "error", err)
	}

	return nil, ErrUnavailable
}

func (c *Client) completeWithProvider(ctx context.Context, apiURL, apiKey, model, systemPrompt string, messages []Message, tool *Tool) (*chatResponse, error) {
	all := make([]Message, 0, len(messages)+1)
	if systemPrompt != "" {
		all = append(all, Message{Role: "system", Content: systemPrompt})
	}
	all = append(all, messages...)

	reqBody := chatRequest{Model: model, Messages: all, Temperature: 0.7}
	if tool != nil {
		reqBody.Tools = []Tool{*tool}
		reqBody.ToolChoice = map[string]interface{}{
			"type":     "function",
			"function": map[string]string{"name": tool.Function.Name},
		}
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("AI API error: status %d", resp.StatusCode)
	}

	var completion chatResponse
	if err := json.Unmarshal(respBody, &completion); err != nil {
		return nil, err
	}
	return &completion, nil
}

// extractJSONObject pulls the outermost JSON object out of free text,
// tolerating markdown code fences.
func extractJSONObject(content string) json.RawMessage {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```json") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimSuffix(content, "```")
		content = strings.TrimSpace(content)
	} else if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimSuffix(content, "```")
		content = strings.TrimSpace(content)
	}

	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start < 0 || end <= start {
		return nil
	}
	candidate := content[start : end+1]
	if !json.Valid([]byte(candidate)) {
		return nil
	}
	return json.RawMessage(candidate)
}
