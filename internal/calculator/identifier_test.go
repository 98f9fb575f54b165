package calculator

import (
	"testing"

	"GoldSync/internal/model"
)

func TestParseIdentifier_Table(t *testing.T) {
	tests := []struct {
		identifier string
		want       model.ParsedAttributes
	}{
		{"GOLD-22K-10G", model.ParsedAttributes{PurityGrade: 22, WeightGrams: 10}},
		{"gold-18k-2.5g", model.ParsedAttributes{PurityGrade: 18, WeightGrams: 2.5}},
		{"GOLD-10G", model.ParsedAttributes{PurityGrade: 24, WeightGrams: 10}},
		{"GOLD-21K", model.ParsedAttributes{PurityGrade: 21, WeightGrams: 0}},
		{"GOLD-K14-G5", model.ParsedAttributes{PurityGrade: 14, WeightGrams: 5}},
		{"RING-ROSE-22K-4G", model.ParsedAttributes{PurityGrade: 22, WeightGrams: 4}},
		{"GOLD-22K-10G-5G", model.ParsedAttributes{PurityGrade: 22, WeightGrams: 10}},
		{"GOLD-18K-22K-1G", model.ParsedAttributes{PurityGrade: 18, WeightGrams: 1}},
		{"GOLD-9K-1G", model.ParsedAttributes{PurityGrade: 9, WeightGrams: 1}},
		{"", model.ParsedAttributes{PurityGrade: 24, WeightGrams: 0}},
		{"   ", model.ParsedAttributes{PurityGrade: 24, WeightGrams: 0}},
		{"GOLD", model.ParsedAttributes{PurityGrade: 24, WeightGrams: 0}},
		{"SILVER-BAR", model.ParsedAttributes{PurityGrade: 24, WeightGrams: 0}},
	}
	for _, tt := range tests {
		got := ParseIdentifier(tt.identifier)
		if got != tt.want {
			t.Errorf("ParseIdentifier(%q): expected %+v, got %+v", tt.identifier, tt.want, got)
		}
	}
}

func TestParseIdentifier_MalformedFallsBackToDefaults(t *testing.T) {
	defaults := model.ParsedAttributes{PurityGrade: 24, WeightGrams: 0}
	for _, id := range []string{
		"GOLD-22.5K-10G", // grade must be an integer
		"GOLD-22K-1.2.3G",
		"GOLD-..K-10G",
		"GOLD-22K-.G",
		"GOLD-22KT-10G", // marker followed by a suffix
		"GOLD-XK-10G",
		"GOLD-10KG-22K", // first K token wins, even when malformed
		"RING-BLACK-22K-4G",
		"GOLD-22K-10GR",
		"GOLD-22K-1E3G",
	} {
		if got := ParseIdentifier(id); got != defaults {
			t.Errorf("ParseIdentifier(%q): expected defaults, got %+v", id, got)
		}
	}
}

func TestParseIdentifier_NoPurityMarkerMeans24(t *testing.T) {
	for _, id := range []string{"GOLD-10G", "BAR-100G", "GOLD-COIN-31.1G", "X"} {
		if got := ParseIdentifier(id); got.PurityGrade != 24 {
			t.Errorf("ParseIdentifier(%q): expected grade 24, got %d", id, got.PurityGrade)
		}
	}
}

func TestParseIdentifier_NoWeightMarkerIsIneligible(t *testing.T) {
	for _, id := range []string{"GOLD-22K", "GOLD-CHAIN", "GOLD-18K-LONG", "G-K"} {
		got := ParseIdentifier(id)
		if got.WeightGrams != 0 {
			t.Errorf("ParseIdentifier(%q): expected weight 0, got %v", id, got.WeightGrams)
		}
		if got.Eligible() {
			t.Errorf("ParseIdentifier(%q): expected ineligible", id)
		}
	}
}

func TestParseIdentifier_MalformedPurityIsNeverPricedAsPure(t *testing.T) {
	for _, id := range []string{"GOLD-22KT-10G", "GOLD-18KT-10G", "GOLD-XK-10G"} {
		attrs := ParseIdentifier(id)
		if attrs.Eligible() {
			t.Errorf("ParseIdentifier(%q): expected ineligible, got %+v", id, attrs)
		}
	}
}
