package testdoubles

import (
	"sync"
	"testing"

	"gotest.tools/assert"
)

// AddressValidator returns the error in Errors for an address, or nil.
type AddressValidator struct {
	Errors    map[string]error
	validated []string
	lock      sync.Mutex
}

func NewAddressValidator() *AddressValidator {
	return &AddressValidator{Errors: map[string]error{}}
}

func (av *AddressValidator) ValidateAddress(address string) error {
	av.lock.Lock()
	defer av.lock.Unlock()

	av.validated = append(av.validated, address)
	return av.Errors[address]
}

func (av *AddressValidator) Validated() []string {
	av.lock.Lock()
	defer av.lock.Unlock()

	return append([]string{}, av.validated...)
}

func (av *AddressValidator) AssertValidated(
	t *testing.T, expected ...string,
) {
	t.Helper()
	av.lock.Lock()
	defer av.lock.Unlock()

	assert.DeepEqual(t, expected, av.validated)
}
