package email

import (
	"net/netip"
	"strings"
)

const (
	// MaxDomainLength is the limit on the domain part, in octets of its
	// ASCII-compatible form.
	MaxDomainLength = 255

	// MaxLabelLength is the RFC 1035 limit on a single hostname label.
	MaxLabelLength = 63
)

const ipv6Tag = "IPv6:"

func validateDomain(domain string, idn bool) Reason {
	if domain == "" {
		return ReasonDomainEmpty
	} else if len(domain) > MaxDomainLength {
		return ReasonDomainTooLong
	} else if domain[0] == '[' {
		return validateIpLiteral(domain)
	} else if strings.ContainsAny(domain, "[]") {
		return ReasonUnbalancedBracket
	}
	return validateHostname(domain, idn)
}

// validateIpLiteral accepts "[a.b.c.d]" and "[IPv6:...]" per RFC 5321 section
// 4.1.3. The general address literal form isn't supported.
func validateIpLiteral(domain string) Reason {
	if len(domain) < 2 || domain[len(domain)-1] != ']' {
		return ReasonUnbalancedBracket
	}

	literal := domain[1 : len(domain)-1]
	if strings.ContainsAny(literal, "[]") {
		return ReasonUnbalancedBracket
	}

	wantIpv6 := len(literal) > len(ipv6Tag) &&
		strings.EqualFold(literal[:len(ipv6Tag)], ipv6Tag)
	if wantIpv6 {
		literal = literal[len(ipv6Tag):]
	}

	addr, err := netip.ParseAddr(literal)
	if err != nil || addr.Zone() != "" || addr.Is6() != wantIpv6 {
		return ReasonInvalidIpLiteral
	}
	return ReasonNone
}

func validateHostname(domain string, idn bool) Reason {
	if idn {
		domain = mapLabelSeparators(domain)
	}

	labels := strings.Split(domain, ".")
	for _, label := range labels {
		if label == "" {
			return ReasonEmptyLabel
		}
	}
	if len(labels) < 2 {
		return ReasonTooFewLabels
	}

	asciiLen := len(labels) - 1
	for i, label := range labels {
		var reason Reason
		if labels[i], reason = toAsciiLabel(label, idn); reason != ReasonNone {
			return reason
		} else if labels[i] == "" {
			// IDNA mapping removes ignorable code points such as U+00AD.
			return ReasonEmptyLabel
		}
		asciiLen += len(labels[i])
	}

	if asciiLen > MaxDomainLength {
		return ReasonDomainTooLong
	}
	for _, label := range labels {
		if reason := validateLabel(label); reason != ReasonNone {
			return reason
		}
	}
	return validateTld(labels[len(labels)-1])
}

func validateLabel(label string) Reason {
	if label == "" {
		return ReasonEmptyLabel
	} else if len(label) > MaxLabelLength {
		return ReasonLabelTooLong
	}
	for i := 0; i < len(label); i++ {
		if c := label[i]; !(isAsciiLetter(c) || isAsciiDigit(c) || c == '-') {
			return ReasonInvalidDomainChar
		}
	}
	if label[0] == '-' || label[len(label)-1] == '-' {
		return ReasonLabelHyphen
	}

	// RFC 5891 section 4.2.3.1 reserves labels with "--" in the third and
	// fourth positions. Only the "xn--" ACE prefix is in use.
	if len(label) >= 4 && label[2:4] == "--" {
		if !hasAcePrefix(label) {
			return ReasonReservedLabel
		} else if _, err := toUnicodeLabel(label); err != nil {
			return ReasonInvalidPunycode
		}
	}
	return ReasonNone
}

// validateTld doesn't consult a list of delegated top level domains. Any TLD
// that could be delegated passes: two or more ASCII letters, or an A-label
// encoding only letters and combining marks.
//
// This is stricter than the plain hostname label rules. Single character and
// digit-bearing TLDs such as "c" or "c0m" are rejected, since none can be
// delegated under current root zone policy.
func validateTld(tld string) Reason {
	if hasAcePrefix(tld) {
		if ulabel, err := toUnicodeLabel(tld); err != nil {
			return ReasonInvalidPunycode
		} else if !isLetters(ulabel) {
			return ReasonInvalidTld
		}
		return ReasonNone
	}

	if len(tld) < 2 {
		return ReasonInvalidTld
	}
	for i := 0; i < len(tld); i++ {
		if !isAsciiLetter(tld[i]) {
			return ReasonInvalidTld
		}
	}
	return ReasonNone
}
