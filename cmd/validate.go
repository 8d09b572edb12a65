// Copyright © 2023 Mike Bland <mbland@acm.org>
// See LICENSE.txt for details.

package cmd

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	ltypes "github.com/aws/aws-sdk-go-v2/service/lambda/types"
	"github.com/google/uuid"
	"github.com/mbland/addrcheck/agent"
	"github.com/mbland/addrcheck/db"
	"github.com/mbland/addrcheck/email"
	"github.com/mbland/addrcheck/events"
	"github.com/spf13/cobra"
)

const validateDescription = `` +
	`Validates the syntax of each email address argument.

If no arguments are given, reads one address per line from standard input,
ignoring blank lines.

Each address produces one line of output:

  foo@bar.com: valid
  foo@bar: invalid: TooFewLabels

By default, addresses are validated locally. With --stack-name, they're sent
to the addrcheck Lambda function deployed by that CloudFormation stack, which
also records each result in its DynamoDB table.

The command fails if any address is invalid.`

func init() {
	rootCmd.AddCommand(
		newValidateCmd(NewCloudFormationClient, NewLambdaClient),
	)
}

func newValidateCmd(
	newCfnClient CloudFormationClientFactoryFunc,
	newLambdaClient LambdaClientFactoryFunc,
) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [address...]",
		Short: "Validate the syntax of email addresses",
		Long:  validateDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			return validate(cmd, args, newCfnClient, newLambdaClient)
		},
	}
	registerStackName(cmd)
	registerValidatorOptions(cmd)
	return cmd
}

func validate(
	cmd *cobra.Command,
	args []string,
	newCfnClient CloudFormationClientFactoryFunc,
	newLambdaClient LambdaClientFactoryFunc,
) (err error) {
	cmd.SilenceUsage = true
	ctx := context.Background()
	var addresses []string
	var results []*db.Result

	if addresses, err = readAddresses(cmd.InOrStdin(), args); err != nil {
		return
	} else if stackName := getStackName(cmd); stackName == "" {
		results, err = validateLocally(ctx, getValidatorOptions(cmd), addresses)
	} else {
		results, err = validateRemotely(
			ctx, newCfnClient(), newLambdaClient(), stackName, addresses,
		)
	}

	if err != nil {
		return
	}
	return reportResults(cmd.OutOrStdout(), results)
}

func readAddresses(input io.Reader, args []string) ([]string, error) {
	if len(args) != 0 {
		return args, nil
	}

	addresses := []string{}
	scanner := bufio.NewScanner(input)

	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			addresses = append(addresses, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read addresses: %w", err)
	} else if len(addresses) == 0 {
		return nil, errors.New("no addresses to validate")
	}
	return addresses, nil
}

func validateLocally(
	ctx context.Context, opts email.Options, addresses []string,
) ([]*db.Result, error) {
	a := &agent.ProdAgent{
		Validator:   email.NewValidator(opts),
		NewUid:      uuid.NewRandom,
		CurrentTime: time.Now,
		Log:         log.New(io.Discard, "", 0),
	}
	return a.ValidateAll(ctx, addresses)
}

func validateRemotely(
	ctx context.Context,
	cfc CloudFormationClient,
	client LambdaClient,
	stackName string,
	addresses []string,
) (results []*db.Result, err error) {
	var lambdaArn string
	if lambdaArn, err = GetLambdaArn(ctx, cfc, stackName); err != nil {
		return
	}

	evt := &events.CommandLineEvent{
		AddrcheckCommand: events.CommandLineValidateEvent,
		Validate:         &events.ValidateEvent{Addresses: addresses},
	}
	input := &lambda.InvokeInput{
		FunctionName: aws.String(lambdaArn),
		LogType:      ltypes.LogTypeTail,
		Payload:      mustMarshal(evt, "failed to marshal Validate event"),
	}
	var output *lambda.InvokeOutput
	var response events.ValidateResponse

	// https://docs.aws.amazon.com/lambda/latest/dg/invocation-sync.html
	if output, err = client.Invoke(ctx, input); err != nil {
		err = fmt.Errorf("error invoking Lambda function: %s", err)
	} else if output.StatusCode != http.StatusOK {
		const errFmt = "received non-200 response from Lambda invocation: %s"
		err = fmt.Errorf(errFmt, http.StatusText(int(output.StatusCode)))
	} else if output.FunctionError != nil {
		const errFmt = "error executing Lambda function: %s: %s"
		funcErr := aws.ToString(output.FunctionError)
		err = fmt.Errorf(errFmt, funcErr, string(output.Payload))
	} else if err = json.Unmarshal(output.Payload, &response); err != nil {
		const errFmt = "failed to unmarshal Lambda response payload: %s: %s"
		err = fmt.Errorf(errFmt, err, string(output.Payload))
	} else if !response.Success {
		err = fmt.Errorf("validation failed: %s", response.Details)
	} else {
		results = response.Results
	}
	return
}

func reportResults(w io.Writer, results []*db.Result) error {
	numInvalid := 0

	for _, r := range results {
		if r.Valid {
			fmt.Fprintf(w, "%s: valid\n", r.Address)
		} else {
			numInvalid++
			fmt.Fprintf(w, "%s: invalid: %s\n", r.Address, r.Reason)
		}
	}

	if numInvalid != 0 {
		const errFmt = "%d of %d addresses failed validation"
		return fmt.Errorf(errFmt, numInvalid, len(results))
	}
	return nil
}

func mustMarshal(v any, panicMsg string) []byte {
	payload, err := json.Marshal(v)
	if err != nil {
		panic(panicMsg + ": " + err.Error())
	}
	return payload
}
