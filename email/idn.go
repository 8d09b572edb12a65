package email

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/net/idna"
)

const acePrefix = "xn--"

// idnaProfile converts labels between Unicode and ASCII-compatible encoding
// using the IDNA2008 lookup rules from UTS #46, without transitional mapping.
var idnaProfile = idna.New(
	idna.MapForLookup(),
	idna.BidiRule(),
	idna.Transitional(false),
)

// RFC 3490 section 3.1 treats these as label separators in addition to '.'.
var labelSeparators = strings.NewReplacer(
	"。", ".", // ideographic full stop
	"．", ".", // fullwidth full stop
	"｡", ".", // halfwidth ideographic full stop
)

func mapLabelSeparators(domain string) string {
	if isAscii(domain) {
		return domain
	}
	return labelSeparators.Replace(domain)
}

// toAsciiLabel returns ASCII labels unchanged and converts the rest to
// A-labels when IDN support is enabled.
func toAsciiLabel(label string, idn bool) (string, Reason) {
	if isAscii(label) {
		return label, ReasonNone
	} else if !idn || !utf8.ValidString(label) {
		return "", ReasonInvalidDomainChar
	} else if alabel, err := idnaProfile.ToASCII(label); err != nil {
		return "", ReasonInvalidIdn
	} else {
		return alabel, ReasonNone
	}
}

// toUnicodeLabel decodes an A-label, failing on malformed punycode or if the
// decoded label isn't a valid U-label.
func toUnicodeLabel(alabel string) (string, error) {
	return idnaProfile.ToUnicode(strings.ToLower(alabel))
}

func hasAcePrefix(label string) bool {
	return len(label) >= len(acePrefix) &&
		strings.EqualFold(label[:len(acePrefix)], acePrefix)
}

func isAscii(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

func isLetters(s string) bool {
	for _, r := range s {
		if !(unicode.IsLetter(r) || unicode.IsMark(r)) {
			return false
		}
	}
	return s != ""
}
