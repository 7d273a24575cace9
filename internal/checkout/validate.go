package checkout

import (
	"fmt"
	"regexp"
	"strings"

	"chaikada_store_front/internal/models"
)

var (
	mobileRe = regexp.MustCompile(`^[6-9]\d{9}$`)
	zipRe    = regexp.MustCompile(`^\d{6}$`)
)

// IsValidMobile reports whether s is a 10-digit mobile number with a leading
// digit of 6-9. Shared with the guest order-tracking lookup.
func IsValidMobile(s string) bool {
	return mobileRe.MatchString(s)
}

// FieldErrors maps field name to an inline message. Validation failures never
// reach the network.
type FieldErrors map[string]string

// ValidationError returns the checkout flow to the editing step with per-field
// messages attached.
type ValidationError struct {
	Fields FieldErrors
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(keys, ", "))
}

// Validate checks the collected address, payment method and (for guests) the
// contact details. All failures are reported together; submission is blocked
// while any remain.
func Validate(input Input, authenticated bool) FieldErrors {
	errs := FieldErrors{}
	addr := input.Address

	if strings.TrimSpace(addr.FullName) == "" {
		errs["fullName"] = "Full name is required"
	}
	if strings.TrimSpace(addr.Phone) == "" {
		errs["phone"] = "Phone number is required"
	} else if !IsValidMobile(addr.Phone) {
		errs["phone"] = "Enter a valid 10-digit mobile number"
	}
	if strings.TrimSpace(addr.Street) == "" {
		errs["street"] = "Address is required"
	}
	if strings.TrimSpace(addr.City) == "" {
		errs["city"] = "City is required"
	}
	if strings.TrimSpace(addr.State) == "" {
		errs["state"] = "State is required"
	}
	if strings.TrimSpace(addr.ZipCode) == "" {
		errs["zipCode"] = "PIN code is required"
	} else if !zipRe.MatchString(addr.ZipCode) {
		errs["zipCode"] = "Enter a valid 6-digit PIN code"
	}

	switch input.PaymentMethod {
	case models.PaymentMethodCOD:
	case models.PaymentMethodOnline:
		if !authenticated {
			// guests may only pay on delivery
			errs["paymentMethod"] = "Online payment requires an account"
		}
	default:
		errs["paymentMethod"] = "Select a payment method"
	}

	if !authenticated {
		if input.GuestContact == nil || strings.TrimSpace(input.GuestContact.Mobile) == "" {
			errs["mobile"] = "Mobile number is required"
		} else if !IsValidMobile(input.GuestContact.Mobile) {
			errs["mobile"] = "Enter a valid 10-digit mobile number"
		}
	}

	return errs
}
