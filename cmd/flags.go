// Copyright © 2023 Mike Bland <mbland@acm.org>
// See LICENSE.txt for details.

package cmd

import (
	"strconv"

	"github.com/mbland/addrcheck/email"
	"github.com/spf13/cobra"
)

const (
	FlagStackName     = "stack-name"
	FlagNoIdn         = "no-idn"
	FlagUtf8LocalPart = "utf8-local-part"
	FlagUrl           = "url"
)

func registerStackName(cmd *cobra.Command) {
	cmd.Flags().StringP(
		FlagStackName, "s", "",
		"name of the target addrcheck CloudFormation stack",
	)
}

func getStackName(cmd *cobra.Command) string {
	return getStringFlag(cmd, FlagStackName)
}

func registerValidatorOptions(cmd *cobra.Command) {
	cmd.Flags().Bool(
		FlagNoIdn, false, "reject non-ASCII domain names",
	)
	cmd.Flags().Bool(
		FlagUtf8LocalPart, false, "accept UTF-8 characters in local parts",
	)
}

func getValidatorOptions(cmd *cobra.Command) email.Options {
	opts := email.DefaultOptions()
	opts.Idn = !getBoolFlag(cmd, FlagNoIdn)
	opts.Utf8LocalPart = getBoolFlag(cmd, FlagUtf8LocalPart)
	return opts
}

func getStringFlag(cmd *cobra.Command, flagName string) (value string) {
	if f := cmd.Flag(flagName); f != nil {
		value = f.Value.String()
	}
	return
}

func getBoolFlag(cmd *cobra.Command, flagName string) (value bool) {
	if f := cmd.Flag(flagName); f != nil {
		value, _ = strconv.ParseBool(f.Value.String())
	}
	return
}
