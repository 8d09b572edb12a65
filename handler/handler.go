package handler

import (
	"context"
	"fmt"
	"log"

	"github.com/mbland/addrcheck/agent"
)

// Handler dispatches each Lambda Event to the API or command line handler.
type Handler struct {
	api *apiHandler
	cli *cliHandler
	log *log.Logger
}

func NewHandler(a agent.ValidationAgent, logger *log.Logger) *Handler {
	return &Handler{
		api: &apiHandler{a, logger},
		cli: &cliHandler{a, logger},
		log: logger,
	}
}

func (h *Handler) HandleEvent(ctx context.Context, e *Event) (any, error) {
	switch e.Type {
	case ApiRequest:
		return h.api.HandleEvent(ctx, e.ApiRequest), nil
	case CommandLineEvent:
		return h.cli.HandleEvent(ctx, e.CommandLineEvent)
	}
	err := fmt.Errorf("unexpected event type: %s: %+v", e.Type, e)
	h.log.Printf("ERROR: %s", err)
	return nil, err
}
