package domain

// Currency is the currency a product is denominated in.
type Currency struct {
	Code          string `json:"code"`          // ISO code, e.g. "USD"
	DecimalPlaces int    `json:"decimalPlaces"` // digits after the decimal separator
	InMultiplesOf *int   `json:"inMultiplesOf"` // optional rounding multiple
}

// Equal compares two currencies field by field.
func (c Currency) Equal(o Currency) bool {
	if c.Code != o.Code || c.DecimalPlaces != o.DecimalPlaces {
		return false
	}
	if c.InMultiplesOf == nil || o.InMultiplesOf == nil {
		return c.InMultiplesOf == nil && o.InMultiplesOf == nil
	}
	return *c.InMultiplesOf == *o.InMultiplesOf
}
