package model

// ParsedAttributes are the physical attributes encoded in an item identifier.
type ParsedAttributes struct {
	PurityGrade int
	WeightGrams float64
}

// Eligible reports whether the attributes carry enough information to be priced.
func (a ParsedAttributes) Eligible() bool {
	return a.WeightGrams > 0
}

// PriceBreakdown holds the rounded parts of a computed price.
// Fields are rounded independently, so FinalPrice may differ from
// BaseCost+Markup+Tax by a unit or two.
type PriceBreakdown struct {
	BaseCost   int64 `json:"baseCost"`
	Markup     int64 `json:"markup"`
	Tax        int64 `json:"tax"`
	FinalPrice int64 `json:"finalPrice"`
}
