package models

// ShippingAddress is collected at checkout. Every field except Country is
// required; phone and zip formats are validated before submission.
type ShippingAddress struct {
	FullName string `json:"fullName"`
	Phone    string `json:"phone"`
	Street   string `json:"street"`
	City     string `json:"city"`
	State    string `json:"state"`
	ZipCode  string `json:"zipCode"`
	Country  string `json:"country"`
}

// GuestContact exists only for unauthenticated checkout. Name falls back to
// ShippingAddress.FullName when empty.
type GuestContact struct {
	Mobile string `json:"mobile"`
	Name   string `json:"name,omitempty"`
	Email  string `json:"email,omitempty"`
}
