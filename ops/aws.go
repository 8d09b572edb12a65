package ops

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/smithy-go"
)

// AwsError wraps AWS server faults with ErrExternal.
//
// Client faults and non-API errors pass through unchanged, since they signal a
// problem with the request rather than with the upstream service.
//
// Inspired by:
// https://aws.github.io/aws-sdk-go-v2/docs/handling-errors/#api-error-responses
func AwsError(msg string, err error) error {
	var apiErr smithy.APIError

	if errors.As(err, &apiErr) && apiErr.ErrorFault() == smithy.FaultServer {
		return fmt.Errorf("%w: %s: %w", ErrExternal, msg, err)
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// LoadDefaultAwsConfig loads the shared AWS configuration from the
// environment, credentials files, and instance metadata.
func LoadDefaultAwsConfig(ctx context.Context) (cfg aws.Config, err error) {
	if cfg, err = config.LoadDefaultConfig(ctx); err != nil {
		err = fmt.Errorf("failed to load AWS config: %w", err)
	}
	return
}

// MustLoadDefaultAwsConfig panics if LoadDefaultAwsConfig fails.
//
// The cmd package uses it to initialize a package level configuration shared
// by every AWS client it creates.
func MustLoadDefaultAwsConfig() aws.Config {
	cfg, err := LoadDefaultAwsConfig(context.Background())
	if err != nil {
		panic(err.Error())
	}
	return cfg
}
