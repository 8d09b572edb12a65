// Package tlds retrieves the list of top level domains delegated in the root
// zone.
package tlds

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/mbland/addrcheck/ops"
	"golang.org/x/net/idna"
)

// DefaultListUrl is the IANA list of delegated top level domains, one per
// line, in upper case, preceded by a "# Version" comment.
const DefaultListUrl = "https://data.iana.org/TLD/tlds-alpha-by-domain.txt"

type HttpClient interface {
	Do(*http.Request) (*http.Response, error)
}

type Fetcher struct {
	Client HttpClient
	Url    string
}

// NewFetcher returns a Fetcher for DefaultListUrl using http.DefaultClient.
func NewFetcher() *Fetcher {
	return &Fetcher{Client: http.DefaultClient, Url: DefaultListUrl}
}

// Fetch retrieves and parses the TLD list.
//
// Transport failures and non-200 responses wrap ops.ErrExternal.
func (f *Fetcher) Fetch(ctx context.Context) (tlds []string, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.Url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create TLD list request: %w", err)
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		const errFmt = "%w: failed to fetch TLD list from %s: %w"
		return nil, fmt.Errorf(errFmt, ops.ErrExternal, f.Url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		const errFmt = "%w: failed to fetch TLD list from %s: %s"
		return nil, fmt.Errorf(errFmt, ops.ErrExternal, f.Url, resp.Status)
	}

	if tlds, err = Parse(resp.Body); err != nil {
		err = fmt.Errorf("failed to read TLD list from %s: %w", f.Url, err)
	}
	return
}

// Parse reads one TLD per line, skipping blank lines and "#" comments. Every
// TLD is returned in lower case.
func Parse(r io.Reader) ([]string, error) {
	tlds := make([]string, 0, 1500)
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		tlds = append(tlds, strings.ToLower(line))
	}
	return tlds, scanner.Err()
}

// ToUnicode returns the Unicode form of an "xn--" TLD, or tld itself if it
// isn't an A-label or fails to decode.
func ToUnicode(tld string) string {
	if alabel := strings.ToLower(tld); !strings.HasPrefix(alabel, "xn--") {
		return tld
	} else if ulabel, err := idna.Lookup.ToUnicode(alabel); err == nil {
		return ulabel
	}
	return tld
}
