package handler

import (
	"context"
	"fmt"
	"log"

	"github.com/mbland/addrcheck/agent"
	"github.com/mbland/addrcheck/events"
)

type cliHandler struct {
	Agent agent.ValidationAgent
	Log   *log.Logger
}

func (h *cliHandler) HandleEvent(
	ctx context.Context, e *events.CommandLineEvent,
) (res any, err error) {
	switch e.AddrcheckCommand {
	case events.CommandLineValidateEvent:
		if e.Validate == nil {
			err = fmt.Errorf("missing payload for command: %s", e.AddrcheckCommand)
		} else {
			res = h.HandleValidateEvent(ctx, e.Validate)
		}
	default:
		err = fmt.Errorf("unknown addrcheck command: %s", e.AddrcheckCommand)
	}
	return
}

func (h *cliHandler) HandleValidateEvent(
	ctx context.Context, e *events.ValidateEvent,
) (res *events.ValidateResponse) {
	res = &events.ValidateResponse{}
	var err error

	if res.Results, err = h.Agent.ValidateAll(ctx, e.Addresses); err != nil {
		res.Details = err.Error()
	} else {
		res.Success = true
	}

	numValid := 0
	for _, r := range res.Results {
		if r != nil && r.Valid {
			numValid++
		}
	}

	const logFmt = "validate: addresses: %d; success: %t; num valid: %d"
	h.Log.Printf(logFmt, len(e.Addresses), res.Success, numValid)
	return
}
