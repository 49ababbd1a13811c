package llm

import (
	"context"

	"github.com/Harshitk-cp/flash/internal/domain"
)

// MockClient is a configurable generation client for testing.
// Set the response fields to control what Complete returns.
type MockClient struct {
	CompleteResponse string
	CompleteError    error

	// Call tracking for assertions
	CompleteCalls [][]domain.Message
}

func NewMockClient() *MockClient {
	return &MockClient{
		CompleteResponse: "Mock completion",
	}
}

func (c *MockClient) Complete(ctx context.Context, messages []domain.Message, temperature float32, maxTokens int) (string, error) {
	c.CompleteCalls = append(c.CompleteCalls, messages)
	if c.CompleteError != nil {
		return "", c.CompleteError
	}
	return c.CompleteResponse, nil
}

// Reset clears recorded calls and restores default responses.
func (c *MockClient) Reset() {
	c.CompleteResponse = "Mock completion"
	c.CompleteError = nil
	c.CompleteCalls = nil
}
