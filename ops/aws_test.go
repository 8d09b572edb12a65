//go:build small_tests || all_tests

package ops

import (
	"context"
	"errors"
	"testing"

	"github.com/mbland/addrcheck/testutils"
	"gotest.tools/assert"
)

func TestAwsError(t *testing.T) {
	t.Run("WrapsOriginalIfNotAPIError", func(t *testing.T) {
		err := errors.New("Not an APIError")

		result := AwsError("put failed", err)

		assert.Error(t, result, "put failed: Not an APIError")
		assert.Assert(t, errors.Is(result, err))
		assert.Assert(t, !errors.Is(result, ErrExternal))
	})

	t.Run("WrapsOriginalIfNotServerError", func(t *testing.T) {
		err := testutils.AwsClientError("bad request")

		result := AwsError("put failed", err)

		assert.Assert(t, errors.Is(result, err))
		assert.Assert(t, !errors.Is(result, ErrExternal))
	})

	t.Run("WrapsServerErrorWithErrExternal", func(t *testing.T) {
		err := testutils.AwsServerError("table unavailable")

		result := AwsError("put failed", err)

		assert.ErrorContains(t, result, "external error: put failed: ")
		assert.ErrorContains(t, result, "table unavailable")
		assert.Assert(t, testutils.ErrorIs(result, ErrExternal))
	})
}

// Technically this is a medium test, since the SDK may inspect the local
// environment and config files. It never makes a network request, though, and
// LoadDefaultConfig succeeds even without credentials, so it runs with the
// small tests.
func TestLoadDefaultAwsConfig(t *testing.T) {
	t.Run("SucceedsIfValidConfigIsAvailable", func(t *testing.T) {
		_, err := LoadDefaultAwsConfig(context.Background())

		assert.NilError(t, err)
	})

	t.Run("MustLoadDoesNotPanic", func(t *testing.T) {
		cfg := MustLoadDefaultAwsConfig()

		assert.Assert(t, cfg.Credentials != nil)
	})
}
