package email

// AddressValidator wraps the ValidateAddress method.
//
// ValidateAddress decides whether a string is a syntactically valid email
// address. It returns nil if the address passes validation, or an
// *InvalidAddressError describing the first rule it violated.
//
// Validation is purely syntactic. It never performs DNS lookups or contacts
// mail hosts, so it's safe to call from any number of goroutines.
type AddressValidator interface {
	ValidateAddress(address string) error
}

// Options enables features beyond the ASCII grammar of RFC 5321.
type Options struct {
	// Idn converts Unicode domain labels to their ASCII-compatible "xn--"
	// form before validating them. When false, any non-ASCII character in the
	// domain fails validation.
	Idn bool

	// Utf8LocalPart admits non-ASCII characters in unquoted local parts, per
	// RFC 6531. Quoted local parts always admit them.
	Utf8LocalPart bool
}

// DefaultOptions enables IDN domains but not UTF-8 local parts.
func DefaultOptions() Options {
	return Options{Idn: true}
}

// Validator is the production implementation of AddressValidator.
type Validator struct {
	opts Options
}

func NewValidator(opts Options) *Validator {
	return &Validator{opts}
}

var defaultValidator = NewValidator(DefaultOptions())

// IsValidEmailString reports whether s is a valid email address using
// DefaultOptions.
func IsValidEmailString(s string) bool {
	return defaultValidator.IsValid(s)
}

// Validate validates address using DefaultOptions.
func Validate(address string) error {
	return defaultValidator.ValidateAddress(address)
}

func (v *Validator) Options() Options {
	return v.opts
}

func (v *Validator) IsValid(address string) bool {
	return v.ValidateAddress(address) == nil
}

// ValidateAddress splits the address at its only unquoted '@', then checks
// the local part and the domain independently.
//
// The local part must be a dot-atom or a quoted string of at most 64 octets.
// The domain must be a bracketed IP literal, or at least two hostname labels
// of at most 255 octets in total, after any IDN conversion.
func (v *Validator) ValidateAddress(address string) error {
	local, domain, reason := splitAddress(address)

	if reason == ReasonNone {
		reason = validateLocalPart(local, v.opts.Utf8LocalPart)
	}
	if reason == ReasonNone {
		reason = validateDomain(domain, v.opts.Idn)
	}
	if reason != ReasonNone {
		return invalid(address, reason)
	}
	return nil
}

// splitAddress finds the one '@' that's neither inside a quoted string nor
// escaped by a backslash.
func splitAddress(address string) (local, domain string, reason Reason) {
	if address == "" {
		return "", "", ReasonEmpty
	}

	at := -1
	inQuote := false

	for i := 0; i < len(address); i++ {
		switch address[i] {
		case '\\':
			i++
		case '"':
			inQuote = !inQuote
		case '@':
			if inQuote {
				continue
			} else if at != -1 {
				return "", "", ReasonMultipleAt
			}
			at = i
		}
	}

	if inQuote {
		return "", "", ReasonUnbalancedQuote
	} else if at == -1 {
		return "", "", ReasonMissingAt
	}
	return address[:at], address[at+1:], ReasonNone
}
