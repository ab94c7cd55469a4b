// Package notify carries the showcase completion event from a session to
// whoever is listening: callbacks, channels, the log, Redis or Postgres.
package notify

import (
	"context"
	"time"
)

const (
	TypeBlockCompletion = "BLOCK_COMPLETION"
	BlockID             = "fake-product-showcase"
)

type CompletionData struct {
	FirstPurchase string `json:"firstPurchase"`
}

// Completion marks that a session performed its first cart addition.
type Completion struct {
	Type      string         `json:"type"`
	BlockID   string         `json:"blockId"`
	Completed bool           `json:"completed"`
	Data      CompletionData `json:"data"`

	SessionID string    `json:"sessionId,omitempty"`
	At        time.Time `json:"at"`
}

func NewCompletion(sessionID, productName string, at time.Time) Completion {
	return Completion{
		Type:      TypeBlockCompletion,
		BlockID:   BlockID,
		Completed: true,
		Data:      CompletionData{FirstPurchase: productName},
		SessionID: sessionID,
		At:        at.UTC(),
	}
}

// Sink receives completions from the Dispatcher worker. Deliver must honour
// ctx; the dispatcher bounds every call with its delivery timeout.
type Sink interface {
	Name() string
	Deliver(ctx context.Context, c Completion) error
}
