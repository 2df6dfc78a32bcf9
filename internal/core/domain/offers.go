package domain

import "sort"

// EligibleOffers returns the offers whose minimum income is met, cheapest rate
// first. Offers with equal rates keep their catalog order. catalog is not
// modified.
func EligibleOffers(income float64, catalog []BankOffer) []BankOffer {
	eligible := make([]BankOffer, 0, len(catalog))
	for _, offer := range catalog {
		if income >= offer.MinIncome {
			eligible = append(eligible, offer)
		}
	}

	sort.SliceStable(eligible, func(i, j int) bool {
		return eligible[i].ROI < eligible[j].ROI
	})
	return eligible
}

// Recommend returns the best eligible offer. ok is false when no bank serves
// this income level, which is a normal outcome and not a failure.
func Recommend(income float64, catalog []BankOffer) (offer BankOffer, ok bool) {
	eligible := EligibleOffers(income, catalog)
	if len(eligible) == 0 {
		return BankOffer{}, false
	}
	return eligible[0], true
}

// Recommendation bundles the ranked eligible offers and the best one.
type Recommendation struct {
	Income   float64
	Eligible []BankOffer
	Best     *BankOffer
	NoMatch  bool
}

// Match builds a Recommendation for income against catalog.
func Match(income float64, catalog []BankOffer) Recommendation {
	eligible := EligibleOffers(income, catalog)
	rec := Recommendation{Income: income, Eligible: eligible, NoMatch: len(eligible) == 0}
	if !rec.NoMatch {
		best := eligible[0]
		rec.Best = &best
	}
	return rec
}
