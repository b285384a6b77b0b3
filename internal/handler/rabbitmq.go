// Package handler consumes price check commands from RabbitMQ.
package handler

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/accadaniel/PriceSpy/internal/platform/rabbitmq"
	"github.com/accadaniel/PriceSpy/pkg/v1/commander"
	"github.com/rs/zerolog"
)

// Checker runs price checks for tracked products.
type Checker interface {
	CheckAll(ctx context.Context) error
	CheckByID(ctx context.Context, productID int) error
}

// RMQHandler handles RMQ messages.
type RMQHandler struct {
	rmq     *rabbitmq.RabbitMQ
	checker Checker
	logger  *zerolog.Logger
}

// NewHandler returns new RMQHandler.
func NewHandler(rmq *rabbitmq.RabbitMQ, checker Checker, logger *zerolog.Logger) *RMQHandler {
	return &RMQHandler{
		rmq:     rmq,
		checker: checker,
		logger:  logger,
	}
}

// Start starts consuming and handling price check commands from RMQ.
func (h *RMQHandler) Start(ctx context.Context, queue string) error {
	errorsChan, err := h.rmq.Consume(ctx, queue, func(ctx context.Context, message []byte) error {
		cmd, err := decodeMessage(message)
		if err != nil {
			return err
		}

		h.logger.Debug().
			Int("productId", cmd.ProductID).
			Msg("price check started")

		if cmd.ProductID == 0 {
			err = h.checker.CheckAll(ctx)
		} else {
			err = h.checker.CheckByID(ctx, cmd.ProductID)
		}
		if err != nil {
			return fmt.Errorf("price check failed: %w", err)
		}

		h.logger.Debug().
			Int("productId", cmd.ProductID).
			Msg("price check finished")

		return nil
	})
	if err != nil {
		return err
	}

	go func() {
		for err := range errorsChan {
			h.logger.Error().
				Err(err).
				Msg("can't handle message")
		}
	}()

	return nil
}

func decodeMessage(msg []byte) (*commander.CheckCommand, error) {
	var cmd commander.CheckCommand
	err := json.Unmarshal(msg, &cmd)
	if err != nil {
		return nil, fmt.Errorf("can't decode check command: %w", err)
	}

	return &cmd, err
}
