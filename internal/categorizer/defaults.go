package categorizer

import "github.com/cleared-dev/stmtledger/internal/model"

// DefaultRules returns the built-in rule table. Order matters: earlier rules
// shadow later ones when a description matches both.
func DefaultRules() []Rule {
	return []Rule{
		{Category: model.CategoryGroceries, Keywords: []string{
			"pak n save", "paknsave", "four square", "woolworths", "countdown",
			"new world", "fresh choice",
		}},
		{Category: model.CategoryTransport, Keywords: []string{
			"fuel", "mobil", "z energy", "bp connect", "gull", "caltex",
			"at hop", "metlink", "parking",
		}},
		{Category: model.CategoryFitness, Keywords: []string{
			"cityfitness", "city fitness", "les mills", "anytime fitness",
			"snap fitness", "gym",
		}},
		{Category: model.CategoryEatingOut, Keywords: []string{
			"kfc", "dominos", "mcdonalds", "subway", "burger king", "pizza hut",
			"break time", "st pierre",
		}},
		{Category: model.CategorySubscriptions, Keywords: []string{
			"google one", "steam", "adobe", "apple", "shein", "aliex", "eneba",
			"spotify", "netflix",
		}},
		{Category: model.CategoryIncome, Keywords: []string{
			"credit transfer", "salary", "wages", "deposit", "ird refund",
			"inland revenue",
		}},
		{Category: model.CategoryHealth, Keywords: []string{
			"pharmacy", "chemist", "unichem", "doctor", "medical", "dental",
			"hospital", "physio",
		}},
	}
}
