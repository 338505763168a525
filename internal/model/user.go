package model

import (
	"regexp"
	"strings"
	"time"
)

// mobilePattern matches a 10-digit Indian mobile number.
var mobilePattern = regexp.MustCompile(`^[6-9][0-9]{9}$`)

// ValidPhone reports whether s is a valid customer mobile number.
func ValidPhone(s string) bool {
	return mobilePattern.MatchString(s)
}

// Address is a customer's postal address as stored by the backend.
type Address struct {
	Line1   string `json:"line1"`
	Line2   string `json:"line2,omitempty"`
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
	Zip     string `json:"zip"`
}

// String joins the non-empty address parts into a single display line.
func (a Address) String() string {
	last := strings.TrimSpace(a.Country)
	if zip := strings.TrimSpace(a.Zip); zip != "" {
		last = last + " - " + zip
	}

	var parts []string
	for _, p := range []string{a.Line1, a.Line2, a.City, a.State, last} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// User is a shop customer. The dashboard only reads users; all writes
// happen through the storefront.
type User struct {
	ID      string     `json:"_id"`
	Name    string     `json:"name"`
	Phone   string     `json:"phone"`
	Email   string     `json:"email,omitempty"`
	Address Address    `json:"address"`
	DOB     *time.Time `json:"dob,omitempty"`
}
