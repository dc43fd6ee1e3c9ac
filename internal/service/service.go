// Package service is the facade the presentation tier calls. Every method
// returns ok=false when the data is unavailable, whatever the cause; the
// cause is in the log.
package service

import (
	"context"

	"github.com/gyeh/chargecompare/internal/model"
)

// ComparisonService serves side-by-side comparisons of two providers'
// charges for one classification.
type ComparisonService interface {
	Setting() model.Setting

	// Classifications returns every classification, id and definition only.
	Classifications(ctx context.Context) ([]model.ChargeClassification, bool)

	// States returns the states with charges for the classification.
	States(ctx context.Context, classificationID int) ([]string, bool)

	// CitiesToCompare returns the cities of state with charges for the classification.
	CitiesToCompare(ctx context.Context, classificationID int, state string) ([]string, bool)

	// Providers returns the providers of city, state with charges for the classification.
	Providers(ctx context.Context, state, city string, classificationID int) ([]model.Provider, bool)

	// Charges returns one provider's charge detail for the classification.
	Charges(ctx context.Context, classificationID, providerID int) (model.ChargeClassification, bool)

	// Result pairs a provider and a classification taken from lists the
	// caller already fetched, then fills in the provider's charge detail.
	// No database call is made when either id is missing from its list.
	Result(ctx context.Context, providers []model.Provider, providerID int,
		classifications []model.ChargeClassification, classificationID int) (model.ComparisonResult, bool)
}

// RegionalService serves charges of every provider in a city.
type RegionalService interface {
	Setting() model.Setting

	// Cities returns the cities of state.
	Cities(ctx context.Context, state string) ([]string, bool)

	// ClassificationsByRegion returns the classifications with charges in city, state.
	ClassificationsByRegion(ctx context.Context, state, city string) ([]model.ChargeClassification, bool)

	// RegionalResults returns one result per provider row for the classification in city, state.
	RegionalResults(ctx context.Context, state, city string, classificationID int) ([]model.ComparisonResult, bool)
}
