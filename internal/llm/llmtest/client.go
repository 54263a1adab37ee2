// Package llmtest provides a scripted llm.Client for tests.
package llmtest

import (
	"context"
	"sync"

	"github.com/jonathan/smart-resume/internal/llm"
)

var _ llm.Client = (*Client)(nil)

// Response is one scripted reply from Client.
type Response struct {
	Text string
	Err  error
}

// Client is a scripted llm.Client.
// Each call consumes the next queued response; the last one repeats once the queue is drained.
type Client struct {
	mu        sync.Mutex
	responses []Response
	prompts   []string
	closed    bool
}

// NewClient creates a Client with the given scripted responses.
func NewClient(responses ...Response) *Client {
	return &Client{responses: responses}
}

// Enqueue appends scripted responses.
func (m *Client) Enqueue(responses ...Response) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, responses...)
}

// GenerateContent records the prompt and returns the next scripted response.
func (m *Client) GenerateContent(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.prompts = append(m.prompts, prompt)
	if len(m.responses) == 0 {
		return "", nil
	}

	resp := m.responses[0]
	if len(m.responses) > 1 {
		m.responses = m.responses[1:]
	}
	return resp.Text, resp.Err
}

// Prompts returns every prompt received so far.
func (m *Client) Prompts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.prompts))
	copy(out, m.prompts)
	return out
}

// Calls returns the number of GenerateContent calls.
func (m *Client) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.prompts)
}

// Model returns a fixed model name.
func (m *Client) Model() string {
	return "mock"
}

// Close marks the client closed.
func (m *Client) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Closed reports whether Close was called.
func (m *Client) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}
