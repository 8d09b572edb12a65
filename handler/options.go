package handler

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/mbland/addrcheck/agent"
	"github.com/mbland/addrcheck/email"
)

const (
	ResultsTableNameVar = "RESULTS_TABLE_NAME"
	IdnVar              = "ADDRCHECK_IDN"
	Utf8LocalPartVar    = "ADDRCHECK_UTF8_LOCAL_PART"
	MaxConcurrencyVar   = "ADDRCHECK_MAX_CONCURRENCY"
)

type Options struct {
	ResultsTableName string
	Idn              bool
	Utf8LocalPart    bool
	MaxConcurrency   int
}

// EmailOptions returns the email.Options selected by the environment.
func (opts *Options) EmailOptions() email.Options {
	return email.Options{Idn: opts.Idn, Utf8LocalPart: opts.Utf8LocalPart}
}

type UndefinedEnvVarsError struct {
	UndefinedVars []string
}

func (e *UndefinedEnvVarsError) Error() string {
	return "undefined environment variables:\n  " +
		strings.Join(e.UndefinedVars, "\n  ")
}

// GetOptions reads Options from the environment via getenv.
//
// Only RESULTS_TABLE_NAME is required. The validator options default to
// email.DefaultOptions() and the concurrency limit to
// agent.DefaultMaxConcurrency.
func GetOptions(getenv func(string) string) (*Options, error) {
	env := environment{getenv: getenv}
	return env.options()
}

type environment struct {
	getenv      func(string) string
	missingVars []string
	errs        []error
}

func (env *environment) options() (*Options, error) {
	defaults := email.DefaultOptions()
	opts := Options{
		Idn:            defaults.Idn,
		Utf8LocalPart:  defaults.Utf8LocalPart,
		MaxConcurrency: agent.DefaultMaxConcurrency,
	}
	env.assign(&opts.ResultsTableName, ResultsTableNameVar)
	env.assignBool(&opts.Idn, IdnVar)
	env.assignBool(&opts.Utf8LocalPart, Utf8LocalPartVar)
	env.assignInt(&opts.MaxConcurrency, MaxConcurrencyVar)

	if len(env.missingVars) != 0 {
		env.errs = append(
			[]error{&UndefinedEnvVarsError{env.missingVars}}, env.errs...,
		)
	}
	if len(env.errs) != 0 {
		return nil, errors.Join(env.errs...)
	}
	return &opts, nil
}

func (env *environment) assign(opt *string, varname string) {
	if value := env.getenv(varname); value == "" {
		env.missingVars = append(env.missingVars, varname)
	} else {
		*opt = value
	}
}

func (env *environment) assignBool(opt *bool, varname string) {
	if value := env.getenv(varname); value == "" {
		return
	} else if parsed, err := strconv.ParseBool(value); err != nil {
		const errFmt = "invalid %s value: %q: must be a boolean"
		env.errs = append(env.errs, fmt.Errorf(errFmt, varname, value))
	} else {
		*opt = parsed
	}
}

func (env *environment) assignInt(opt *int, varname string) {
	if value := env.getenv(varname); value == "" {
		return
	} else if parsed, err := strconv.Atoi(value); err != nil || parsed < 1 {
		const errFmt = "invalid %s value: %q: must be a positive integer"
		env.errs = append(env.errs, fmt.Errorf(errFmt, varname, value))
	} else {
		*opt = parsed
	}
}
