package pkg

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/jsreddy3/persona-backend/models"
)

type RequestMessage struct {
	Role    string `json:"role"`
	Content string `json:"content,omitempty"`
	Name    string `json:"name,omitempty"`
}

type ChatCompletionRequest struct {
	Model       string           `json:"model"`
	Messages    []RequestMessage `json:"messages"`
	MaxTokens   uint32           `json:"max_tokens"`
	Temperature *float32         `json:"temperature,omitempty"`
	TopP        *float32         `json:"top_p,omitempty"`
	Stream      *bool            `json:"stream,omitempty"`
	Stop        []string         `json:"stop,omitempty"`
	User        *string          `json:"user,omitempty"`
}

type StreamDelta struct {
	Role    string `json:"role,omitempty"`
	Content string `json:"content,omitempty"`
}

type StreamChoice struct {
	Index        uint32      `json:"index"`
	Delta        StreamDelta `json:"delta"`
	FinishReason string      `json:"finish_reason,omitempty"`
}

type StreamChatCompletionResponse struct {
	ID      string         `json:"id"`
	Object  string         `json:"object"`
	Created uint64         `json:"created"`
	Model   string         `json:"model"`
	Choices []StreamChoice `json:"choices"`
}

// ChatClient talks to an OpenAI-compatible chat completion API
type ChatClient struct {
	client    *http.Client
	apiKey    string
	baseURL   string
	model     string
	maxTokens uint32
}

func NewChatClient(apiKey, baseURL, model string, maxTokens uint32) *ChatClient {
	return &ChatClient{
		client:    &http.Client{},
		apiKey:    apiKey,
		baseURL:   strings.TrimSuffix(baseURL, "/"),
		model:     model,
		maxTokens: maxTokens,
	}
}

func (c *ChatClient) post(ctx context.Context, endpoint string, body interface{}) (*http.Response, error) {
	url := fmt.Sprintf("%s/%s", c.baseURL, endpoint)

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.apiKey))
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("request failed with status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	return resp, nil
}

// StreamCompletion opens a streaming chat completion seeded with the system
// prompt and conversation history, invoking onToken per content chunk in
// arrival order. Cancelling ctx aborts the underlying request.
func (c *ChatClient) StreamCompletion(ctx context.Context, systemPrompt string, history []models.Message, onToken func(chunk string) error) error {
	chatMessages := make([]RequestMessage, 0, len(history)+1)
	chatMessages = append(chatMessages, RequestMessage{
		Role:    "system",
		Content: systemPrompt,
	})
	for _, msg := range history {
		chatMessages = append(chatMessages, RequestMessage{
			Role:    msg.Role,
			Content: msg.Content,
		})
	}

	streamTrue := true
	request := ChatCompletionRequest{
		Model:     c.model,
		Messages:  chatMessages,
		MaxTokens: c.maxTokens,
		Stream:    &streamTrue,
	}

	resp, err := c.post(ctx, "chat/completions", request)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		line := scanner.Text()
		// Skip empty lines or non-data lines
		if line == "" || !strings.HasPrefix(line, "data: ") {
			continue
		}

		// Check for stream end
		if line == "data: [DONE]" {
			break
		}

		jsonData := line[6:] // Remove "data: " prefix
		var response StreamChatCompletionResponse
		if err := json.Unmarshal([]byte(jsonData), &response); err != nil {
			return fmt.Errorf("failed to unmarshal stream chunk: %w", err)
		}

		for _, choice := range response.Choices {
			if choice.Delta.Content == "" {
				continue
			}
			if err := onToken(choice.Delta.Content); err != nil {
				return err
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading stream: %w", err)
	}

	return nil
}
