package types

import "strings"

// NoAddressMarker is shown when a producer has no address parts at all.
const NoAddressMarker = "Morada não disponível"

// Address is the read-side view of a producer's postal address.
type Address struct {
	Street    *string `json:"street"`
	Number    *string `json:"number"`
	City      string  `json:"city"`
	State     string  `json:"state"`
	ZipCode   *string `json:"zip_code"`
	Formatted string  `json:"formatted"`
}

// NewAddress builds an Address with its formatted line filled in.
func NewAddress(street, number *string, city, state string, zipCode *string) Address {
	a := Address{
		Street:  street,
		Number:  number,
		City:    city,
		State:   state,
		ZipCode: zipCode,
	}
	a.Formatted = a.Format()
	return a
}

// Format renders "{number}, {street}, {city}, {zip}" skipping absent parts.
func (a Address) Format() string {
	parts := make([]string, 0, 3)

	if street := deref(a.Street); street != "" {
		if number := deref(a.Number); number != "" {
			parts = append(parts, number+", "+street)
		} else {
			parts = append(parts, street)
		}
	}
	if city := strings.TrimSpace(a.City); city != "" {
		parts = append(parts, city)
	}
	if zip := deref(a.ZipCode); zip != "" {
		parts = append(parts, zip)
	}

	if len(parts) == 0 {
		return NoAddressMarker
	}
	return strings.Join(parts, ", ")
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return strings.TrimSpace(*value)
}
