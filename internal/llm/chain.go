package llm

import (
	"context"
	"errors"

	"go.uber.org/zap"
)

// Chain tries its clients in order and returns the first successful answer.
type Chain struct {
	clients []Client
	logger  *zap.Logger
}

// NewChain creates a Chain. Unconfigured clients are skipped at call time.
func NewChain(logger *zap.Logger, clients ...Client) *Chain {
	return &Chain{clients: clients, logger: logger}
}

func (c *Chain) Name() string { return "chain" }

// Model returns the model of the first configured client.
func (c *Chain) Model() string {
	for _, client := range c.clients {
		if client.Configured() {
			return client.Model()
		}
	}
	return ""
}

func (c *Chain) Configured() bool {
	for _, client := range c.clients {
		if client.Configured() {
			return true
		}
	}
	return false
}

func (c *Chain) Complete(ctx context.Context, p Prompt) (string, error) {
	text, _, err := c.CompleteWithModel(ctx, p)
	return text, err
}

// CompleteWithModel also reports which model produced the answer.
func (c *Chain) CompleteWithModel(ctx context.Context, p Prompt) (string, string, error) {
	var errs []error
	for _, client := range c.clients {
		if !client.Configured() {
			continue
		}

		text, err := client.Complete(ctx, p)
		if err == nil {
			return text, client.Model(), nil
		}

		c.logger.Warn("llm provider failed",
			zap.String("provider", client.Name()),
			zap.Error(err),
		)
		errs = append(errs, err)

		if ctx.Err() != nil {
			break
		}
	}

	if len(errs) == 0 {
		return "", "", ErrNotConfigured
	}

	return "", "", errors.Join(append([]error{ErrNoProvider}, errs...)...)
}
