// Copyright © 2023 Mike Bland <mbland@acm.org>
// See LICENSE.txt for details.

package cmd

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/mbland/addrcheck/db"
	"github.com/mbland/addrcheck/ops"
)

var AwsConfig aws.Config = ops.MustLoadDefaultAwsConfig()

// FunctionArnKey is the CloudFormation stack output naming the ARN of the
// deployed addrcheck Lambda function.
const FunctionArnKey = "FunctionArn"

type DynamoDbFactoryFunc func(tableName string) *db.DynamoDb

func NewDynamoDb(tableName string) *db.DynamoDb {
	return db.NewDynamoDb(&AwsConfig, tableName)
}

type LambdaClient interface {
	Invoke(
		context.Context,
		*lambda.InvokeInput,
		...func(*lambda.Options),
	) (*lambda.InvokeOutput, error)
}

type LambdaClientFactoryFunc func() LambdaClient

func NewLambdaClient() LambdaClient {
	return lambda.NewFromConfig(AwsConfig)
}

type CloudFormationClient interface {
	DescribeStacks(
		context.Context,
		*cloudformation.DescribeStacksInput,
		...func(*cloudformation.Options),
	) (*cloudformation.DescribeStacksOutput, error)
}

type CloudFormationClientFactoryFunc func() CloudFormationClient

func NewCloudFormationClient() CloudFormationClient {
	return cloudformation.NewFromConfig(AwsConfig)
}

func GetLambdaArn(
	ctx context.Context, client CloudFormationClient, stackName string,
) (string, error) {
	input := &cloudformation.DescribeStacksInput{StackName: &stackName}
	output, err := client.DescribeStacks(ctx, input)

	if err != nil {
		return "", ops.AwsError("failed to get Lambda ARN for "+stackName, err)
	} else if len(output.Stacks) == 0 {
		return "", fmt.Errorf("stack not found: %s", stackName)
	}

	for _, out := range output.Stacks[0].Outputs {
		if aws.ToString(out.OutputKey) == FunctionArnKey {
			return aws.ToString(out.OutputValue), nil
		}
	}
	const errFmt = `stack "%s" doesn't contain output key "%s"`
	return "", fmt.Errorf(errFmt, stackName, FunctionArnKey)
}
