package email

import "unicode/utf8"

// MaxLocalPartLength is the RFC 5321 limit on the local part, in octets.
const MaxLocalPartLength = 64

type localState int

const (
	localStart localState = iota
	localInAtom
	localAfterDot
	localInQuote
	localAfterEscape
	localAfterQuote
)

type runeClass int

const (
	classAtext runeClass = iota
	classDot
	classQuote
	classEscape
	classSpace

	// Printable ASCII that's only legal inside a quoted string, such as '@',
	// brackets, and parentheses.
	classSpecial

	classNonAscii

	// Control characters, DEL, and invalid UTF-8.
	classControl
)

// atext from RFC 5322 section 3.2.3, minus ALPHA and DIGIT.
var atextPunct = [128]bool{
	'!': true, '#': true, '$': true, '%': true, '&': true, '\'': true,
	'*': true, '+': true, '-': true, '/': true, '=': true, '?': true,
	'^': true, '_': true, '`': true, '{': true, '|': true, '}': true,
	'~': true,
}

func classify(r rune, size int) runeClass {
	switch {
	case r == utf8.RuneError && size <= 1:
		return classControl
	case r >= utf8.RuneSelf:
		return classNonAscii
	case isAsciiLetter(byte(r)) || isAsciiDigit(byte(r)) || atextPunct[r]:
		return classAtext
	case r == '.':
		return classDot
	case r == '"':
		return classQuote
	case r == '\\':
		return classEscape
	case r == ' ' || r == '\t':
		return classSpace
	case r > ' ' && r < 0x7f:
		return classSpecial
	}
	return classControl
}

func isAsciiLetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func isAsciiDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

type localPartParser struct {
	allowUtf8 bool
}

func (p localPartParser) isAtom(c runeClass) bool {
	return c == classAtext || (p.allowUtf8 && c == classNonAscii)
}

func (p localPartParser) next(s localState, c runeClass) (localState, Reason) {
	switch s {
	case localStart:
		if c == classQuote {
			return localInQuote, ReasonNone
		} else if c == classDot {
			return s, ReasonLeadingDot
		}
		fallthrough
	case localAfterDot:
		if p.isAtom(c) {
			return localInAtom, ReasonNone
		} else if c == classDot {
			return s, ReasonConsecutiveDots
		}
		return s, ReasonInvalidLocalChar
	case localInAtom:
		if p.isAtom(c) {
			return localInAtom, ReasonNone
		} else if c == classDot {
			return localAfterDot, ReasonNone
		}
		return s, ReasonInvalidLocalChar
	case localInQuote:
		switch c {
		case classEscape:
			return localAfterEscape, ReasonNone
		case classQuote:
			return localAfterQuote, ReasonNone
		case classControl:
			return s, ReasonInvalidQuotedChar
		}
		return localInQuote, ReasonNone
	case localAfterEscape:
		// quoted-pair allows VCHAR and WSP only.
		if c == classControl || c == classNonAscii {
			return s, ReasonInvalidQuotedChar
		}
		return localInQuote, ReasonNone
	}
	return s, ReasonContentAfterQuote
}

func (p localPartParser) finish(s localState) Reason {
	switch s {
	case localInAtom, localAfterQuote:
		return ReasonNone
	case localStart:
		return ReasonLocalPartEmpty
	case localAfterDot:
		return ReasonTrailingDot
	}
	return ReasonUnbalancedQuote
}

// validateLocalPart accepts either a dot-atom or a quoted string.
func validateLocalPart(local string, allowUtf8 bool) Reason {
	if local == "" {
		return ReasonLocalPartEmpty
	} else if unescapedLength(local) > MaxLocalPartLength {
		return ReasonLocalPartTooLong
	}

	p := localPartParser{allowUtf8}
	state := localStart

	for i := 0; i < len(local); {
		r, size := utf8.DecodeRuneInString(local[i:])
		i += size

		var reason Reason
		if state, reason = p.next(state, classify(r, size)); reason != ReasonNone {
			return reason
		}
	}
	return p.finish(state)
}

// unescapedLength counts octets, not counting backslashes that escape the
// following character inside a quoted string.
func unescapedLength(local string) (n int) {
	inQuote := false

	for i := 0; i < len(local); i++ {
		switch c := local[i]; {
		case inQuote && c == '\\':
			i++
		case c == '"':
			inQuote = !inQuote
		}
		n++
	}
	return
}
