package calculator

import (
	"math"

	"github.com/shopspring/decimal"

	"GoldSync/internal/model"
)

const (
	DefaultMarkupRate = 0.10
	DefaultTaxRate    = 0.03
)

// purityFactors maps a karat grade to its fraction of pure gold.
var purityFactors = map[int]float64{
	24: 1.000,
	22: 0.916,
	21: 0.875,
	18: 0.750,
	14: 0.583,
}

// PurityFactor returns the gold fraction for a grade. Unknown grades are
// treated as full purity.
func PurityFactor(grade int) float64 {
	if f, ok := purityFactors[grade]; ok {
		return f
	}
	return 1.0
}

// OuncesToGrams converts a price per troy ounce into a price per gram.
func OuncesToGrams(pricePerOunce float64) float64 {
	return pricePerOunce / model.TroyOunceGrams
}

// GramsToOunces converts a price per gram back into a price per troy ounce.
func GramsToOunces(pricePerGram float64) float64 {
	return pricePerGram * model.TroyOunceGrams
}

// Pricer applies markup and tax on top of the metal cost.
type Pricer struct {
	MarkupRate float64
	TaxRate    float64
}

// DefaultPricer uses a 10% markup and 3% tax.
var DefaultPricer = Pricer{MarkupRate: DefaultMarkupRate, TaxRate: DefaultTaxRate}

// FinalPrice computes the price breakdown for an item.
//
// The chain base -> markup -> subtotal -> tax is carried unrounded; every
// breakdown field is rounded on its own and FinalPrice is rounded once from
// the unrounded subtotal plus tax. Non-finite inputs yield a zero breakdown.
func (p Pricer) FinalPrice(pricePerGram, weightGrams float64, purityGrade int) model.PriceBreakdown {
	if !finite(pricePerGram) || !finite(weightGrams) || !finite(p.MarkupRate) || !finite(p.TaxRate) {
		return model.PriceBreakdown{}
	}

	base := decimal.NewFromFloat(pricePerGram).
		Mul(decimal.NewFromFloat(weightGrams)).
		Mul(decimal.NewFromFloat(PurityFactor(purityGrade)))
	markup := base.Mul(decimal.NewFromFloat(p.MarkupRate))
	subtotal := base.Add(markup)
	tax := subtotal.Mul(decimal.NewFromFloat(p.TaxRate))

	return model.PriceBreakdown{
		BaseCost:   roundUnits(base),
		Markup:     roundUnits(markup),
		Tax:        roundUnits(tax),
		FinalPrice: roundUnits(subtotal.Add(tax)),
	}
}

// FinalPrice prices an item with DefaultPricer.
func FinalPrice(pricePerGram, weightGrams float64, purityGrade int) model.PriceBreakdown {
	return DefaultPricer.FinalPrice(pricePerGram, weightGrams, purityGrade)
}

func roundUnits(d decimal.Decimal) int64 {
	return d.Round(0).IntPart()
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
