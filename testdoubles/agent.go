package testdoubles

import (
	"context"
	"testing"

	"github.com/mbland/addrcheck/db"
	"gotest.tools/assert"
)

// ValidationAgent returns Results in the order passed to NewValidationAgent,
// repeating the last one if necessary.
type ValidationAgent struct {
	Results   []*db.Result
	Error     error
	Addresses []string
	calls     int
}

func NewValidationAgent(results ...*db.Result) *ValidationAgent {
	return &ValidationAgent{Results: results}
}

func (a *ValidationAgent) next() *db.Result {
	if len(a.Results) == 0 {
		return nil
	}
	i := min(a.calls, len(a.Results)-1)
	a.calls++
	return a.Results[i]
}

func (a *ValidationAgent) Validate(
	_ context.Context, address string,
) (*db.Result, error) {
	a.Addresses = append(a.Addresses, address)
	if a.Error != nil {
		return nil, a.Error
	}
	return a.next(), nil
}

func (a *ValidationAgent) ValidateAll(
	_ context.Context, addresses []string,
) ([]*db.Result, error) {
	a.Addresses = append(a.Addresses, addresses...)
	if a.Error != nil {
		return nil, a.Error
	}

	results := make([]*db.Result, len(addresses))
	for i := range addresses {
		results[i] = a.next()
	}
	return results, nil
}

func (a *ValidationAgent) AssertCalledWith(t *testing.T, expected ...string) {
	t.Helper()
	assert.DeepEqual(t, expected, a.Addresses)
}
