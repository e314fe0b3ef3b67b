package checkout

import (
	"errors"
	"strings"
)

// ErrInvalidForm is the single combined validation message; field-level
// detail is not broken out.
var ErrInvalidForm = errors.New("please fill all details correctly, phone must be exactly 10 digits")

// Form is the transient shipping form. Phone and pincode are stored
// pre-sanitized (digits only), never with separators or a country prefix.
type Form struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Pincode string `json:"pincode"`
}

// SanitizePhone strips everything but digits and keeps the last 10, so
// "+91 98765-43210" stores as "9876543210".
func SanitizePhone(s string) string {
	digits := digitsOnly(s)
	if len(digits) > 10 {
		digits = digits[len(digits)-10:]
	}
	return digits
}

func SanitizePincode(s string) string {
	return digitsOnly(s)
}

func (f Form) Validate() error {
	if strings.TrimSpace(f.Name) == "" ||
		strings.TrimSpace(f.Address) == "" ||
		strings.TrimSpace(f.Pincode) == "" ||
		len(f.Phone) != 10 {
		return ErrInvalidForm
	}
	return nil
}

func digitsOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}
