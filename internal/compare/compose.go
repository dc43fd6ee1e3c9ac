// Package compare pairs providers with classifications that were already
// fetched. Nothing here touches the database.
package compare

import "github.com/gyeh/chargecompare/internal/model"

// Compose looks up providerID in providers and classificationID in
// classifications and pairs the two into a ComparisonResult. It reports
// false when either id is missing from its list.
func Compose(setting model.Setting, providers []model.Provider, providerID int,
	classifications []model.ChargeClassification, classificationID int) (model.ComparisonResult, bool) {
	p, ok := FindProvider(providers, providerID)
	if !ok {
		return model.ComparisonResult{}, false
	}
	c, ok := FindClassification(classifications, classificationID)
	if !ok {
		return model.ComparisonResult{}, false
	}
	return model.ComparisonResult{Setting: setting, Provider: p, Classification: c}, true
}

// FindProvider returns a copy of the provider with the given id.
func FindProvider(providers []model.Provider, id int) (model.Provider, bool) {
	for _, p := range providers {
		if p.ID == id {
			return p, true
		}
	}
	return model.Provider{}, false
}

// FindClassification returns a copy of the classification with the given id.
// Percentile pointers are copied too, so the result shares nothing mutable
// with the input list.
func FindClassification(classifications []model.ChargeClassification, id int) (model.ChargeClassification, bool) {
	for _, c := range classifications {
		if c.ID == id {
			return clonePercentiles(c), true
		}
	}
	return model.ChargeClassification{}, false
}

// Merge overlays the amounts and percentiles of detail onto base, keeping
// base's id and definition.
func Merge(base, detail model.ChargeClassification) model.ChargeClassification {
	out := clonePercentiles(base)
	out.AvgCharges = detail.AvgCharges
	out.AvgPayments = detail.AvgPayments
	out.AvgMedicarePayments = detail.AvgMedicarePayments
	d := clonePercentiles(detail)
	out.AvgChargesPercentile = d.AvgChargesPercentile
	out.AvgPaymentsPercentile = d.AvgPaymentsPercentile
	out.AvgMedicarePaymentsPercentile = d.AvgMedicarePaymentsPercentile
	return out
}

func clonePercentiles(c model.ChargeClassification) model.ChargeClassification {
	c.AvgChargesPercentile = clone(c.AvgChargesPercentile)
	c.AvgPaymentsPercentile = clone(c.AvgPaymentsPercentile)
	c.AvgMedicarePaymentsPercentile = clone(c.AvgMedicarePaymentsPercentile)
	return c
}

func clone(p *model.Percentile) *model.Percentile {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
