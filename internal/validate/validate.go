package validate

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrMalformedNumber is returned for non-empty input that is not an integer.
var ErrMalformedNumber = errors.New("not a whole number")

// ErrMalformedCode is returned for input that cannot be a product code.
var ErrMalformedCode = errors.New("malformed product code")

// product codes: two-letter prefix and at least three digits
var reCode = regexp.MustCompile(`^[A-Z]{2}[0-9]{3,}$`)

// Int parses a whole number. Empty input yields def; anything else that does
// not parse is an error rather than a silent default.
func Int(s string, def int) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformedNumber, s)
	}
	return n, nil
}

// Code upper-cases and trims a product code and reports whether it is well formed.
func Code(s string) (string, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	return s, reCode.MatchString(s)
}

// Yes reports an affirmative answer ("y" or "yes", any case).
func Yes(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes":
		return true
	}
	return false
}

// Done reports the sentinel that ends a multi-item sale or restock.
func Done(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), "done")
}
