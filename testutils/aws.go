package testutils

import (
	"context"
	"fmt"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/smithy-go"
	"gotest.tools/assert"
)

// BaseEndpoint is the "host:port" of a local AWS service emulator.
type BaseEndpoint string

// Url returns the endpoint in the form expected by a client's BaseEndpoint
// option.
func (e BaseEndpoint) Url() string {
	return "http://" + string(e)
}

func createBaseEndpoint() (*BaseEndpoint, error) {
	localHostPort, err := PickUnusedHostPort()
	if err != nil {
		return nil, fmt.Errorf("could not create local base endpoint: %w", err)
	}

	endpoint := BaseEndpoint(localHostPort)
	return &endpoint, nil
}

// Inspired by:
// - https://davidagood.com/dynamodb-local-go/
// - https://github.com/aws/aws-sdk-go-v2/blob/main/config/example_test.go
func AwsConfig() (*aws.Config, *BaseEndpoint, error) {
	baseEndpoint, err := createBaseEndpoint()
	if err != nil {
		return nil, nil, err
	}

	dbConfig, err := config.LoadDefaultConfig(
		context.Background(),
		// From: https://pkg.go.dev/github.com/aws/aws-sdk-go-v2/config
		config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider("AKID", "SECRET", "SESSION"),
		),
		config.WithRegion("local"),
	)
	if err != nil {
		err = fmt.Errorf("error loading local AWS configuration: %w", err)
		return nil, nil, err
	}
	return &dbConfig, baseEndpoint, nil
}

// AwsServerError is an API error that ops.AwsError wraps with ErrExternal.
func AwsServerError(msg string) error {
	return &smithy.GenericAPIError{Message: msg, Fault: smithy.FaultServer}
}

// AwsClientError is an API error that ops.AwsError passes through unchanged.
func AwsClientError(msg string) error {
	return &smithy.GenericAPIError{Message: msg, Fault: smithy.FaultClient}
}

func AssertAwsStringEqual(t *testing.T, expected string, actual *string) {
	t.Helper()
	assert.Equal(t, expected, aws.ToString(actual))
}
