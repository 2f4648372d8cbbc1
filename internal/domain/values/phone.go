package values

import (
	"fmt"
	"regexp"
)

// PhoneNumber represents a validated subscriber number value object.
// Billing records use a fixed national format of exactly 12 decimal digits
// (country prefix included, no leading plus).
type PhoneNumber struct {
	number string
}

var subscriberNumberRegex = regexp.MustCompile(`^\d{12}$`)

// NewPhoneNumber creates a new PhoneNumber value object with validation
func NewPhoneNumber(number string) (PhoneNumber, error) {
	if number == "" {
		return PhoneNumber{}, fmt.Errorf("phone number cannot be empty")
	}

	if !subscriberNumberRegex.MatchString(number) {
		return PhoneNumber{}, fmt.Errorf("invalid phone number format: %s", number)
	}

	return PhoneNumber{number: number}, nil
}

// MustNewPhoneNumber creates PhoneNumber and panics on error (for constants/tests)
func MustNewPhoneNumber(number string) PhoneNumber {
	phone, err := NewPhoneNumber(number)
	if err != nil {
		panic(err)
	}
	return phone
}

// String returns the 12-digit subscriber number
func (p PhoneNumber) String() string {
	return p.number
}

// IsEmpty checks if the phone number is the zero value.
// The zero value matches no dialed number and is used as the
// "no exemption" sentinel by the bill calculator.
func (p PhoneNumber) IsEmpty() bool {
	return p.number == ""
}

// Equal checks if two PhoneNumber values are equal
func (p PhoneNumber) Equal(other PhoneNumber) bool {
	return p.number == other.number
}

// Less reports whether p orders before other numerically.
// Both numbers are fixed-width digit strings, so lexicographic
// comparison and numeric comparison agree.
func (p PhoneNumber) Less(other PhoneNumber) bool {
	return p.number < other.number
}
