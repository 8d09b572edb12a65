//go:build small_tests || all_tests

package agent

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mbland/addrcheck/db"
	"github.com/mbland/addrcheck/email"
	"github.com/mbland/addrcheck/testdata"
	"github.com/mbland/addrcheck/testdoubles"
	tu "github.com/mbland/addrcheck/testutils"
	"gotest.tools/assert"
	is "gotest.tools/assert/cmp"
)

const testAddress = testdata.TestAddress
const testInvalidAddress = testdata.TestInvalidAddress

var validResult *db.Result = &db.Result{
	Id:        testdata.TestUid,
	Address:   testAddress,
	Valid:     true,
	Timestamp: testdata.TestTimestamp,
}

var invalidResult *db.Result = &db.Result{
	Id:        testdata.TestUid,
	Address:   testInvalidAddress,
	Valid:     false,
	Reason:    "TooFewLabels",
	Timestamp: testdata.TestTimestamp,
}

type prodAgentTestFixture struct {
	agent     *ProdAgent
	db        *testdoubles.Database
	validator *testdoubles.AddressValidator
	logs      *tu.Logs
}

func newProdAgentTestFixture() *prodAgentTestFixture {
	newUid := func() (uuid.UUID, error) {
		return testdata.TestUid, nil
	}
	db := testdoubles.NewDatabase()
	av := testdoubles.NewAddressValidator()
	av.Errors[testInvalidAddress] = &email.InvalidAddressError{
		Address: testInvalidAddress, Reason: email.ReasonTooFewLabels,
	}
	logs, logger := tu.NewLogs()
	pa := &ProdAgent{
		Validator:   av,
		Db:          db,
		NewUid:      newUid,
		CurrentTime: func() time.Time { return testdata.TestTimestamp },
		Log:         logger,
	}
	return &prodAgentTestFixture{pa, db, av, logs}
}

func TestValidate(t *testing.T) {
	setup := func() (*prodAgentTestFixture, context.Context) {
		return newProdAgentTestFixture(), context.Background()
	}

	t.Run("RecordsValidResult", func(t *testing.T) {
		f, ctx := setup()

		result, err := f.agent.Validate(ctx, testAddress)

		assert.NilError(t, err)
		assert.DeepEqual(t, validResult, result)
		assert.DeepEqual(t, validResult, f.db.Index[testAddress])
		f.validator.AssertValidated(t, testAddress)
		f.logs.AssertDoesNotContain(t, "failed validation")
	})

	t.Run("RecordsInvalidResult", func(t *testing.T) {
		f, ctx := setup()

		result, err := f.agent.Validate(ctx, testInvalidAddress)

		assert.NilError(t, err)
		assert.DeepEqual(t, invalidResult, result)
		assert.DeepEqual(t, invalidResult, f.db.Index[testInvalidAddress])
		f.logs.AssertContains(
			t, testInvalidAddress+" failed validation: TooFewLabels",
		)
	})

	t.Run("SucceedsWithoutDatabase", func(t *testing.T) {
		f, ctx := setup()
		f.agent.Db = nil

		result, err := f.agent.Validate(ctx, testInvalidAddress)

		assert.NilError(t, err)
		assert.DeepEqual(t, invalidResult, result)
		assert.Equal(t, 0, len(f.db.Index))
	})

	t.Run("ReturnsErrorIfNewUidFails", func(t *testing.T) {
		f, ctx := setup()
		f.agent.NewUid = func() (uuid.UUID, error) {
			return uuid.Nil, errors.New("NewUid failed")
		}

		result, err := f.agent.Validate(ctx, testAddress)

		assert.Assert(t, is.Nil(result))
		assert.Error(t, err, "NewUid failed")
	})

	t.Run("ReturnsErrorIfValidatorFailsUnexpectedly", func(t *testing.T) {
		f, ctx := setup()
		f.validator.Errors[testAddress] = errors.New("unexpected error")

		result, err := f.agent.Validate(ctx, testAddress)

		assert.Assert(t, is.Nil(result))
		assert.Error(t, err, "unexpected error")
		assert.Equal(t, 0, len(f.db.Index))
	})

	t.Run("ReturnsErrorIfDatabasePutFails", func(t *testing.T) {
		f, ctx := setup()
		f.db.SimulatePutErr = func(address string) error {
			return errors.New("test error while putting " + address)
		}

		result, err := f.agent.Validate(ctx, testInvalidAddress)

		assert.Assert(t, is.Nil(result))
		assert.Error(t, err, "test error while putting "+testInvalidAddress)
	})
}

func TestValidateAll(t *testing.T) {
	setup := func() (*prodAgentTestFixture, context.Context) {
		return newProdAgentTestFixture(), context.Background()
	}

	addresses := func(n int) []string {
		result := make([]string, n)
		for i := range result {
			if i%2 == 0 {
				result[i] = fmt.Sprintf("user%d@example.com", i)
			} else {
				result[i] = testInvalidAddress
			}
		}
		return result
	}

	t.Run("ReturnsResultsInInputOrder", func(t *testing.T) {
		f, ctx := setup()
		f.agent.MaxConcurrency = 3
		input := addresses(10)

		results, err := f.agent.ValidateAll(ctx, input)

		assert.NilError(t, err)
		assert.Equal(t, len(input), len(results))
		for i, result := range results {
			assert.Equal(t, input[i], result.Address)
			assert.Equal(t, i%2 == 0, result.Valid)
		}

		sorted := append([]string{}, input...)
		sort.Strings(sorted)
		validated := f.validator.Validated()
		sort.Strings(validated)
		assert.DeepEqual(t, sorted, validated)
		assert.Equal(t, 6, len(f.db.Index))
	})

	t.Run("SucceedsWithNoAddresses", func(t *testing.T) {
		f, ctx := setup()

		results, err := f.agent.ValidateAll(ctx, []string{})

		assert.NilError(t, err)
		assert.Equal(t, 0, len(results))
	})

	t.Run("ReturnsErrorIfAnyValidationFails", func(t *testing.T) {
		f, ctx := setup()
		f.db.SimulatePutErr = func(address string) error {
			if address == "user4@example.com" {
				return errors.New("test error while putting " + address)
			}
			return nil
		}

		_, err := f.agent.ValidateAll(ctx, addresses(10))

		assert.Error(t, err, "test error while putting user4@example.com")
	})
}

func TestMaxConcurrency(t *testing.T) {
	a := &ProdAgent{}
	assert.Equal(t, DefaultMaxConcurrency, a.maxConcurrency())

	a.MaxConcurrency = 2
	assert.Equal(t, 2, a.maxConcurrency())
}
