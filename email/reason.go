package email

import "github.com/mbland/addrcheck/ops"

// ErrInvalidAddress is the single error category produced by address
// validation. Every *InvalidAddressError matches it via errors.Is.
const ErrInvalidAddress = ops.SentinelError("invalid email address")

// Reason identifies the rule an address violated.
//
//go:generate go run golang.org/x/tools/cmd/stringer -type=Reason -trimprefix=Reason
type Reason int

const (
	ReasonNone Reason = iota
	ReasonEmpty
	ReasonMissingAt
	ReasonMultipleAt
	ReasonUnbalancedQuote
	ReasonLocalPartEmpty
	ReasonLocalPartTooLong
	ReasonLeadingDot
	ReasonTrailingDot
	ReasonConsecutiveDots
	ReasonInvalidLocalChar
	ReasonContentAfterQuote
	ReasonInvalidQuotedChar
	ReasonDomainEmpty
	ReasonDomainTooLong
	ReasonEmptyLabel
	ReasonTooFewLabels
	ReasonLabelTooLong
	ReasonInvalidDomainChar
	ReasonLabelHyphen
	ReasonReservedLabel
	ReasonInvalidPunycode
	ReasonInvalidIdn
	ReasonInvalidTld
	ReasonUnbalancedBracket
	ReasonInvalidIpLiteral
)

// InvalidAddressError reports why an address failed validation.
type InvalidAddressError struct {
	Address string
	Reason  Reason
}

func (e *InvalidAddressError) Error() string {
	return string(ErrInvalidAddress) + ": " + e.Address + ": " + e.Reason.String()
}

// Is matches ErrInvalidAddress, as well as any *InvalidAddressError with the
// same Reason. A target with ReasonNone matches any reason.
//
// Inspired by the example from the "Customizing error tests with Is and As
// methods" section of https://go.dev/blog/go1.13-errors.
func (e *InvalidAddressError) Is(target error) bool {
	if target == ErrInvalidAddress {
		return true
	} else if t, ok := target.(*InvalidAddressError); !ok {
		return false
	} else {
		return t.Reason == ReasonNone || t.Reason == e.Reason
	}
}

func invalid(address string, reason Reason) error {
	return &InvalidAddressError{Address: address, Reason: reason}
}
