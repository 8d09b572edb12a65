package testutils

import (
	"errors"
	"fmt"
	"testing"

	"gotest.tools/assert"
	"gotest.tools/assert/cmp"
)

// ErrorIs reports whether expectedErr is anywhere in err's tree, printing both
// on failure.
func ErrorIs(err, expectedErr error) cmp.Comparison {
	return func() cmp.Result {
		if errors.Is(err, expectedErr) {
			return cmp.ResultSuccess
		}
		const errFmt = "expected \"%+v\" (%T) in error tree,\ngot: \"%+v\" (%T)"
		errMsg := fmt.Sprintf(errFmt, expectedErr, expectedErr, err, err)
		return cmp.ResultFailure(errMsg)
	}
}

// ExpectPanic must be deferred. It fails the test unless the function under
// test panicked with a value containing expectedMsg.
func ExpectPanic(t *testing.T, expectedMsg string) {
	t.Helper()

	if r := recover(); r != nil {
		assert.Assert(t, cmp.Contains(r, expectedMsg))
	} else {
		t.Fatal("expected panic, but didn't")
	}
}
