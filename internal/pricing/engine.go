package pricing

import (
	"fmt"
	"math"
	"strings"

	"GoldSync/internal/calculator"
	"GoldSync/internal/model"
)

// DefaultMarker identifies price records that follow the gold price.
const DefaultMarker = "GOLD"

// Plan is the pricing decision for one price record.
type Plan struct {
	Record     model.PriceRecord
	Attributes model.ParsedAttributes
	Breakdown  model.PriceBreakdown
	Eligible   bool
	Reason     string // set when not eligible
}

// Evaluator filters price records and prices the eligible ones.
type Evaluator struct {
	Marker string
	Pricer calculator.Pricer
}

// NewEvaluator creates an Evaluator. An empty marker falls back to DefaultMarker.
func NewEvaluator(marker string, pricer calculator.Pricer) *Evaluator {
	if marker == "" {
		marker = DefaultMarker
	}
	return &Evaluator{Marker: strings.ToUpper(marker), Pricer: pricer}
}

// Evaluate decides whether the record is priced from gold and, if so, computes
// its new price from the shared per-gram basis.
func (e *Evaluator) Evaluate(rec model.PriceRecord, pricePerGram float64) Plan {
	plan := Plan{Record: rec}

	if !strings.Contains(strings.ToUpper(rec.Identifier), e.Marker) {
		plan.Reason = fmt.Sprintf("identifier %q has no %s marker", rec.Identifier, e.Marker)
		return plan
	}

	plan.Attributes = calculator.ParseIdentifier(rec.Identifier)
	if !plan.Attributes.Eligible() {
		plan.Reason = fmt.Sprintf("identifier %q has no positive weight", rec.Identifier)
		return plan
	}

	if pricePerGram <= 0 || math.IsNaN(pricePerGram) || math.IsInf(pricePerGram, 0) {
		plan.Reason = fmt.Sprintf("invalid price basis %v", pricePerGram)
		return plan
	}

	plan.Breakdown = e.Pricer.FinalPrice(pricePerGram, plan.Attributes.WeightGrams, plan.Attributes.PurityGrade)
	plan.Eligible = true
	return plan
}
