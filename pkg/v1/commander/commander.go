package commander

import (
	"context"
	"encoding/json"
	"fmt"
)

//go:generate mockery --name Sender --filename sender.go

// Sender sends messages.
type Sender interface {
	Send(context.Context, []byte) error
}

// CheckCommand orders a price check. ProductID 0 means check every active
// product.
type CheckCommand struct {
	ProductID int `json:"productId"`
}

// CheckCommander sends price check commands.
type CheckCommander struct {
	sender Sender
}

// NewCheckCommander returns new CheckCommander using provided sender for sending messages.
func NewCheckCommander(sender Sender) CheckCommander {
	return CheckCommander{
		sender: sender,
	}
}

// SendCheckCommand sends price check command for provided productID.
func (c CheckCommander) SendCheckCommand(ctx context.Context, productID int) error {
	cmd := CheckCommand{
		ProductID: productID,
	}

	cmdMsg, err := json.Marshal(cmd)
	if err != nil {
		return fmt.Errorf("can't marshal check command: %w", err)
	}

	return c.sender.Send(ctx, cmdMsg)
}
