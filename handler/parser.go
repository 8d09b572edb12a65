package handler

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

const (
	ValidatePath   = "/validate"
	ValidatePrefix = ValidatePath + "/"
	AddressParam   = "address"
)

const formContentType = "application/x-www-form-urlencoded"

type apiRequest struct {
	Id          string
	RawPath     string
	Method      string
	ContentType string
	Params      map[string]string
	Body        string
}

// ParseError describes a request the API can't process, along with the HTTP
// status reported to the client.
type ParseError struct {
	HttpStatus int
	Endpoint   string
	Message    string
}

func (e *ParseError) Error() string {
	return e.Message + ": " + e.Endpoint
}

// Is matches any *ParseError with the same HttpStatus. A target with a zero
// HttpStatus matches any *ParseError.
func (e *ParseError) Is(target error) bool {
	if t, ok := target.(*ParseError); !ok {
		return false
	} else {
		return t.HttpStatus == 0 || e.HttpStatus == t.HttpStatus
	}
}

// parseApiRequest returns the address to validate.
//
// GET requests pass the address as the final path segment. POST requests pass
// it as the "address" field of a form encoded body.
func parseApiRequest(req *apiRequest) (string, error) {
	endpoint := req.RawPath
	parseError := func(status int, format string, args ...any) error {
		msg := fmt.Sprintf(format, args...)
		return &ParseError{HttpStatus: status, Endpoint: endpoint, Message: msg}
	}

	switch {
	case req.Method == http.MethodGet && strings.HasPrefix(endpoint, ValidatePrefix):
		return parsePathAddress(req, parseError)
	case req.Method == http.MethodPost && endpoint == ValidatePath:
		return parseFormAddress(req, parseError)
	}
	return "", parseError(http.StatusNotFound, "unknown endpoint")
}

func parsePathAddress(
	req *apiRequest, parseError func(int, string, ...any) error,
) (string, error) {
	value, ok := req.Params[AddressParam]
	if !ok {
		value = strings.TrimPrefix(req.RawPath, ValidatePrefix)
	}

	if address, err := url.PathUnescape(value); err != nil {
		const errFmt = "invalid %s parameter: %s: %s"
		return "", parseError(http.StatusBadRequest, errFmt, AddressParam, value, err)
	} else if address == "" {
		return "", parseError(http.StatusBadRequest, "missing %s parameter", AddressParam)
	} else {
		return address, nil
	}
}

func parseFormAddress(
	req *apiRequest, parseError func(int, string, ...any) error,
) (string, error) {
	if !strings.HasPrefix(req.ContentType, formContentType) {
		const errFmt = "content-type must be %s, got: \"%s\""
		return "", parseError(http.StatusBadRequest, errFmt, formContentType, req.ContentType)
	}

	values, err := url.ParseQuery(req.Body)
	if err != nil {
		const errFmt = "failed to parse body: %s"
		return "", parseError(http.StatusBadRequest, errFmt, err)
	} else if addrs := values[AddressParam]; len(addrs) == 0 || addrs[0] == "" {
		return "", parseError(http.StatusBadRequest, "missing %s parameter", AddressParam)
	} else if len(addrs) != 1 {
		const errFmt = "multiple %s values: %s"
		return "", parseError(http.StatusBadRequest, errFmt, AddressParam, strings.Join(addrs, ", "))
	} else {
		return addrs[0], nil
	}
}
