// Copyright © 2023 Mike Bland <mbland@acm.org>
// See LICENSE.txt for details.

package cmd

import (
	"github.com/spf13/cobra"
)

const addrcheckDesc = "Email address syntax validator with optional " +
	"result storage"
const addrcheckDescLong = addrcheckDesc + "\n\n" +
	`See the https://github.com/mbland/addrcheck README for details.

To validate addresses locally:
  addrcheck validate foo@bar.com "quoted local"@example.com

To validate a file of addresses, one per line:
  addrcheck validate < addresses.txt

To validate via the deployed Lambda function, recording the results:
  addrcheck validate -s <STACK_NAME> foo@bar.com

To check every IANA top level domain against the validator:
  addrcheck check-tlds

To create a results table:
  addrcheck create-results-table <TABLE_NAME>
`

var rootCmd = &cobra.Command{
	Use:     "addrcheck",
	Version: "v0.1.0",
	Short:   addrcheckDesc,
	Long:    addrcheckDescLong,
}

func Execute() error {
	return rootCmd.Execute()
}
