// Copyright © 2023 Mike Bland <mbland@acm.org>
// See LICENSE.txt for details.

package cmd

import (
	"context"
	"time"

	"github.com/mbland/addrcheck/db"
	"github.com/spf13/cobra"
)

const createResultsTableDescription = `` +
	`Creates a new DynamoDB table for email address validation results.

Each record is keyed by address and expires 30 days after validation, after
which the DynamoDB Time To Live feature will remove it.

The command takes one argument, which is the name of the table to create. This
name will become the value of the RESULTS_TABLE_NAME environment variable
used to configure and deploy the application.`

func init() {
	rootCmd.AddCommand(newCreateResultsTableCmd(NewDynamoDb))
}

func newCreateResultsTableCmd(newDynDb DynamoDbFactoryFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "create-results-table",
		Short: "Create a DynamoDB table for validation results",
		Long:  createResultsTableDescription,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return createResultsTable(cmd, newDynDb(args[0]), time.Minute)
		},
	}
}

func createResultsTable(
	cmd *cobra.Command, dyndb *db.DynamoDb, maxWaitDuration time.Duration,
) (err error) {
	cmd.SilenceUsage = true
	ctx := context.Background()

	if err = dyndb.CreateResultsTable(ctx, maxWaitDuration); err == nil {
		cmd.Printf("Successfully created DynamoDB table: %s\n", dyndb.TableName)
	}
	return
}
