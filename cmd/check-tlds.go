// Copyright © 2023 Mike Bland <mbland@acm.org>
// See LICENSE.txt for details.

package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/mbland/addrcheck/email"
	"github.com/mbland/addrcheck/tlds"
	"github.com/spf13/cobra"
)

const checkTldsDescription = `` +
	`Checks that the validator accepts every delegated top level domain.

Fetches the IANA list of top level domains and validates test@example.<TLD>
for each one. When IDN support is enabled (the default), each xn-- TLD is
also checked in its Unicode form.

Prints every rejected address with its reason, then a summary line. The
command fails if any TLD was rejected.`

type HttpClientFactoryFunc func() tlds.HttpClient

func NewHttpClient() tlds.HttpClient {
	return http.DefaultClient
}

func init() {
	rootCmd.AddCommand(newCheckTldsCmd(NewHttpClient))
}

func newCheckTldsCmd(newClient HttpClientFactoryFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check-tlds",
		Short: "Validate an address for every IANA top level domain",
		Long:  checkTldsDescription,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fetcher := &tlds.Fetcher{
				Client: newClient(), Url: getStringFlag(cmd, FlagUrl),
			}
			return checkTlds(cmd, fetcher)
		},
	}
	cmd.Flags().String(FlagUrl, tlds.DefaultListUrl, "location of TLD list")
	registerValidatorOptions(cmd)
	return cmd
}

func checkTlds(cmd *cobra.Command, fetcher *tlds.Fetcher) error {
	cmd.SilenceUsage = true
	opts := getValidatorOptions(cmd)
	v := email.NewValidator(opts)

	tldList, err := fetcher.Fetch(context.Background())
	if err != nil {
		return err
	}

	numRejected := 0
	check := func(tld string) {
		address := "test@example." + tld
		var addrErr *email.InvalidAddressError

		if err := v.ValidateAddress(address); errors.As(err, &addrErr) {
			numRejected++
			cmd.Printf("%s: invalid: %s\n", address, addrErr.Reason)
		}
	}

	for _, tld := range tldList {
		check(tld)
		if unicode := tlds.ToUnicode(tld); opts.Idn && unicode != tld {
			check(unicode)
		}
	}

	cmd.Printf("Checked %d TLDs; rejected: %d\n", len(tldList), numRejected)
	if numRejected != 0 {
		return fmt.Errorf("rejected %d addresses", numRejected)
	}
	return nil
}
