package phone

import "regexp"

var nonDigits = regexp.MustCompile(`\D`)

// Normalize cleans a raw phone value and converts it to the canonical
// +923xxxxxxxxx form. It accepts the three shapes Pakistani mobile numbers
// commonly arrive in (03xxxxxxxxx, 923xxxxxxxxx, 3xxxxxxxxx) and rejects
// everything else, including numbers from other countries that happen to
// have a matching length.
func Normalize(raw string) (string, bool) {
	digits := nonDigits.ReplaceAllString(raw, "")

	switch {
	case len(digits) == 11 && digits[:2] == "03":
		// 03xxxxxxxxx -> drop the leading zero, prepend the country code
		return "+92" + digits[1:], true
	case len(digits) == 12 && digits[:3] == "923":
		return "+" + digits, true
	case len(digits) == 10 && digits[:1] == "3":
		// No leading zero at all
		return "+92" + digits, true
	}

	return "", false
}
