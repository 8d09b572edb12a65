package events

import "github.com/mbland/addrcheck/db"

type CommandLineEventType string

const CommandLineValidateEvent = CommandLineEventType("Validate")

// CommandLineEvent is the payload the CLI sends when invoking the Lambda
// function directly.
type CommandLineEvent struct {
	AddrcheckCommand CommandLineEventType `json:"addrcheckCommand"`
	Validate         *ValidateEvent       `json:"validate,omitempty"`
}

type ValidateEvent struct {
	Addresses []string `json:"addresses"`
}

type ValidateResponse struct {
	Success bool         `json:"success"`
	Results []*db.Result `json:"results"`
	Details string       `json:"details,omitempty"`
}
