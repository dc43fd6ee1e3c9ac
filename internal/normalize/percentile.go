package normalize

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/gyeh/chargecompare/internal/model"
)

// Percentile parses a percentile rank as returned by the database and rounds
// it half-up (away from zero) to model.PercentileScale places.
// 0.565 becomes 0.57 and 0.564 becomes 0.56.
func Percentile(raw string) (model.Percentile, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return model.Percentile{}, fmt.Errorf("empty percentile value")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return model.Percentile{}, fmt.Errorf("parse percentile %q: %w", raw, err)
	}
	return RoundPercentile(d), nil
}

// RoundPercentile rounds an already-parsed value the same way Percentile does.
func RoundPercentile(d decimal.Decimal) model.Percentile {
	return model.Percentile{Decimal: d.Round(model.PercentileScale)}
}
