//go:build small_tests || all_tests

package cmd

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	cftypes "github.com/aws/aws-sdk-go-v2/service/cloudformation/types"
	"github.com/mbland/addrcheck/db"
	"github.com/mbland/addrcheck/events"
	"github.com/mbland/addrcheck/testdata"
	tu "github.com/mbland/addrcheck/testutils"
	"gotest.tools/assert"
	is "gotest.tools/assert/cmp"
)

func TestMustMarshal(t *testing.T) {
	type Marshalable struct {
		Foo string
	}

	type Unmarshalable struct {
		Foo func()
	}

	t.Run("Succeeds", func(t *testing.T) {
		payload := mustMarshal(&Marshalable{Foo: "bar"}, "this shouldn't panic")

		assert.Equal(t, `{"Foo":"bar"}`, string(payload))
	})

	t.Run("FailsIfUnsupported", func(t *testing.T) {
		defer tu.ExpectPanic(t, "this should totally panic")

		mustMarshal(&Unmarshalable{Foo: func() {}}, "this should totally panic")
	})
}

func TestReadAddresses(t *testing.T) {
	t.Run("PrefersArguments", func(t *testing.T) {
		input := strings.NewReader("ignored@example.com\n")

		addresses, err := readAddresses(input, []string{"foo@bar.com"})

		assert.NilError(t, err)
		assert.DeepEqual(t, []string{"foo@bar.com"}, addresses)
	})

	t.Run("ReadsNonBlankLines", func(t *testing.T) {
		input := strings.NewReader("foo@bar.com\n\n  foo@bar  \n\t\n")

		addresses, err := readAddresses(input, nil)

		assert.NilError(t, err)
		assert.DeepEqual(t, []string{"foo@bar.com", "foo@bar"}, addresses)
	})

	t.Run("FailsIfNoAddresses", func(t *testing.T) {
		_, err := readAddresses(strings.NewReader("\n\n"), nil)

		assert.ErrorContains(t, err, "no addresses to validate")
	})
}

func TestValidateLocally(t *testing.T) {
	setup := func(args ...string) *CommandTestFixture {
		f := NewCommandTestFixture(
			newValidateCmd(
				func() CloudFormationClient {
					panic("CloudFormation client should not be created")
				},
				func() LambdaClient {
					panic("Lambda client should not be created")
				},
			),
		)
		f.Cmd.SetArgs(append([]string{}, args...))
		return f
	}

	t.Run("SucceedsForValidAddresses", func(t *testing.T) {
		f := setup("foo@bar.com", `"foo bar"@example.com`, "foo@münchen.de")

		f.ExecuteAndAssertStdoutContains(
			t,
			"foo@bar.com: valid\n"+
				"\"foo bar\"@example.com: valid\n"+
				"foo@münchen.de: valid\n",
		)
		assert.Assert(t, f.Cmd.SilenceUsage == true)
	})

	t.Run("ReadsAddressesFromStdin", func(t *testing.T) {
		f := setup()
		f.Cmd.SetIn(strings.NewReader("foo@bar.com\nbaz@quux.com\n"))

		f.ExecuteAndAssertStdoutContains(
			t, "foo@bar.com: valid\nbaz@quux.com: valid\n",
		)
	})

	t.Run("FailsIfAnyAddressIsInvalid", func(t *testing.T) {
		f := setup("foo@bar.com", "foo@bar", "foo..bar@baz.com")

		f.ExecuteAndAssertErrorContains(
			t, "2 of 3 addresses failed validation",
		)
		assert.Equal(
			t,
			"foo@bar.com: valid\n"+
				"foo@bar: invalid: TooFewLabels\n"+
				"foo..bar@baz.com: invalid: ConsecutiveDots\n",
			f.Stdout.String(),
		)
	})

	t.Run("AppliesValidatorOptions", func(t *testing.T) {
		f := setup("--no-idn", "--utf8-local-part", "用户@münchen.de")

		f.ExecuteAndAssertErrorContains(
			t, "1 of 1 addresses failed validation",
		)
		assert.Equal(
			t, "用户@münchen.de: invalid: InvalidDomainChar\n", f.Stdout.String(),
		)
	})

	t.Run("FailsIfNoAddresses", func(t *testing.T) {
		f := setup()

		f.ExecuteAndAssertErrorContains(t, "no addresses to validate")
	})
}

func TestValidateRemotely(t *testing.T) {
	validResult := &db.Result{
		Id:        testdata.TestUid,
		Address:   testdata.TestAddress,
		Valid:     true,
		Timestamp: testdata.TestTimestamp,
	}
	invalidResult := &db.Result{
		Id:        testdata.TestUid,
		Address:   testdata.TestInvalidAddress,
		Reason:    testdata.TestInvalidReason,
		Timestamp: testdata.TestTimestamp,
	}

	setup := func(results ...*db.Result) (
		f *CommandTestFixture,
		cfc *TestCloudFormationClient,
		tlc *TestLambdaClient,
	) {
		cfc = NewTestCloudFormationClient()

		tlc = NewTestLambdaClient()
		tlc.InvokeOutput.StatusCode = http.StatusOK
		tlc.InvokeOutput.Payload = mustMarshal(
			&events.ValidateResponse{Success: true, Results: results},
			"failed to marshal test response",
		)

		f = NewCommandTestFixture(
			newValidateCmd(
				func() CloudFormationClient { return cfc },
				func() LambdaClient { return tlc },
			),
		)
		f.Cmd.SetArgs([]string{"-s", TestStackName, testdata.TestAddress})
		return
	}

	t.Run("Succeeds", func(t *testing.T) {
		f, _, tlc := setup(validResult)

		f.ExecuteAndAssertStdoutContains(t, "foo@bar.com: valid\n")

		invokeFunctionName := tlc.InvokeInput.FunctionName
		tu.AssertAwsStringEqual(t, TestFunctionArn, invokeFunctionName)
		var evt events.CommandLineEvent
		assert.NilError(t, json.Unmarshal(tlc.InvokeInput.Payload, &evt))
		assert.DeepEqual(
			t,
			events.CommandLineEvent{
				AddrcheckCommand: events.CommandLineValidateEvent,
				Validate: &events.ValidateEvent{
					Addresses: []string{testdata.TestAddress},
				},
			},
			evt,
		)
	})

	t.Run("ReportsInvalidResults", func(t *testing.T) {
		f, _, _ := setup(validResult, invalidResult)
		f.Cmd.SetArgs([]string{
			"-s", TestStackName,
			testdata.TestAddress, testdata.TestInvalidAddress,
		})

		f.ExecuteAndAssertErrorContains(
			t, "1 of 2 addresses failed validation",
		)
		assert.Equal(
			t,
			"foo@bar.com: valid\nfoo@bar: invalid: TooFewLabels\n",
			f.Stdout.String(),
		)
	})

	t.Run("FailsIfGettingFunctionArnFails", func(t *testing.T) {
		f, cfc, _ := setup()
		cfc.DescribeStacksOutput.Stacks = []cftypes.Stack{}

		f.ExecuteAndAssertErrorContains(t, "stack not found: "+TestStackName)
	})

	t.Run("FailsIfCannotInvokeLambda", func(t *testing.T) {
		f, _, tlc := setup()
		tlc.InvokeError = errors.New("invoke failed")

		const expectedErr = "error invoking Lambda function: invoke failed"
		f.ExecuteAndAssertErrorContains(t, expectedErr)
	})

	t.Run("FailsIfStatusCodeIsNotHttp200", func(t *testing.T) {
		f, _, tlc := setup()
		tlc.InvokeOutput.StatusCode = http.StatusBadRequest

		expectedErr := "received non-200 response from Lambda invocation: " +
			http.StatusText(http.StatusBadRequest)
		f.ExecuteAndAssertErrorContains(t, expectedErr)
	})

	t.Run("FailsIfLambdaReturnedError", func(t *testing.T) {
		f, _, tlc := setup()
		tlc.InvokeOutput.FunctionError = aws.String("Lambda error")
		tlc.InvokeOutput.Payload = []byte("something went wrong")

		const expectedErr = "error executing Lambda function: " +
			"Lambda error: something went wrong"
		f.ExecuteAndAssertErrorContains(t, expectedErr)
	})

	t.Run("FailsIfCannotUnmarshalPayload", func(t *testing.T) {
		f, _, tlc := setup()
		tlc.InvokeOutput.Payload = []byte("bogus, invalid payload")

		const expectedErr = "failed to unmarshal Lambda response payload: "
		f.ExecuteAndAssertErrorContains(t, expectedErr)
		assert.Assert(
			t, is.Contains(f.Stderr.String(), "bogus, invalid payload"),
		)
	})

	t.Run("FailsIfValidationUnsuccessful", func(t *testing.T) {
		f, _, tlc := setup()
		tlc.InvokeOutput.Payload = []byte(
			`{"success": false, "details": "db is down"}`,
		)

		f.ExecuteAndAssertErrorContains(t, "validation failed: db is down")
	})
}
