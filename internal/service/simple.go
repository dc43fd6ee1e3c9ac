package service

import (
	"context"

	"github.com/gyeh/chargecompare/internal/compare"
	"github.com/gyeh/chargecompare/internal/model"
)

// Store is the data access the services delegate to.
// *chargedata.Store implements it.
type Store interface {
	Setting() model.Setting
	Classifications(ctx context.Context) ([]model.ChargeClassification, bool)
	States(ctx context.Context, classificationID int) ([]string, bool)
	CitiesToCompare(ctx context.Context, classificationID int, state string) ([]string, bool)
	Cities(ctx context.Context, state string) ([]string, bool)
	Providers(ctx context.Context, state, city string, classificationID int) ([]model.Provider, bool)
	ClassificationsByRegion(ctx context.Context, state, city string) ([]model.ChargeClassification, bool)
	Charges(ctx context.Context, classificationID, providerID int) (model.ChargeClassification, bool)
	RegionalResults(ctx context.Context, state, city string, classificationID int) ([]model.ComparisonResult, bool)
}

type comparison struct {
	store Store
}

// NewComparison returns a ComparisonService backed by store.
func NewComparison(store Store) ComparisonService {
	return &comparison{store: store}
}

func (c *comparison) Setting() model.Setting { return c.store.Setting() }

func (c *comparison) Classifications(ctx context.Context) ([]model.ChargeClassification, bool) {
	return c.store.Classifications(ctx)
}

func (c *comparison) States(ctx context.Context, classificationID int) ([]string, bool) {
	return c.store.States(ctx, classificationID)
}

func (c *comparison) CitiesToCompare(ctx context.Context, classificationID int, state string) ([]string, bool) {
	return c.store.CitiesToCompare(ctx, classificationID, state)
}

func (c *comparison) Providers(ctx context.Context, state, city string, classificationID int) ([]model.Provider, bool) {
	return c.store.Providers(ctx, state, city, classificationID)
}

func (c *comparison) Charges(ctx context.Context, classificationID, providerID int) (model.ChargeClassification, bool) {
	return c.store.Charges(ctx, classificationID, providerID)
}

func (c *comparison) Result(ctx context.Context, providers []model.Provider, providerID int,
	classifications []model.ChargeClassification, classificationID int) (model.ComparisonResult, bool) {
	r, ok := compare.Compose(c.store.Setting(), providers, providerID, classifications, classificationID)
	if !ok {
		return model.ComparisonResult{}, false
	}
	detail, ok := c.store.Charges(ctx, classificationID, providerID)
	if !ok {
		return model.ComparisonResult{}, false
	}
	r.Classification = compare.Merge(r.Classification, detail)
	return r, true
}

type regional struct {
	store Store
}

// NewRegional returns a RegionalService backed by store.
func NewRegional(store Store) RegionalService {
	return &regional{store: store}
}

func (r *regional) Setting() model.Setting { return r.store.Setting() }

func (r *regional) Cities(ctx context.Context, state string) ([]string, bool) {
	return r.store.Cities(ctx, state)
}

func (r *regional) ClassificationsByRegion(ctx context.Context, state, city string) ([]model.ChargeClassification, bool) {
	return r.store.ClassificationsByRegion(ctx, state, city)
}

func (r *regional) RegionalResults(ctx context.Context, state, city string, classificationID int) ([]model.ComparisonResult, bool) {
	return r.store.RegionalResults(ctx, state, city, classificationID)
}
