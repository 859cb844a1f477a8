package cardutil

// IsDigits reports whether s is non-empty and consists only of ASCII digits.
func IsDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// LastFour returns the display-safe fragment of a card number: the final
// four characters, provided the input is at least four characters long and
// those four are all decimal digits. Anything else yields "". This is
// string slicing, not numeric parsing; leading zeros survive.
func LastFour(cardNumber string) string {
	if len(cardNumber) < 4 {
		return ""
	}
	tail := cardNumber[len(cardNumber)-4:]
	if !IsDigits(tail) {
		return ""
	}
	return tail
}
