package model

import "github.com/shopspring/decimal"

// Setting selects the inpatient (DRG) or outpatient (APC) side of the data.
type Setting string

const (
	Inpatient  Setting = "inpatient"
	Outpatient Setting = "outpatient"
)

// AllSettings lists the supported settings in canonical order.
var AllSettings = []Setting{Inpatient, Outpatient}

// SettingByName returns the Setting for the given name, or ok=false.
func SettingByName(name string) (Setting, bool) {
	for _, s := range AllSettings {
		if string(s) == name {
			return s, true
		}
	}
	return "", false
}

// ChargeClassification is a billing classification (a DRG for inpatient
// charges, an APC for outpatient charges) together with the charge figures of
// one provider.
//
// Amount fields hold the exact text returned by the database. They are empty
// for classifications fetched through list queries. Percentile ranks are nil
// unless populated by the charge-detail query and are always scale 2.
type ChargeClassification struct {
	ID                  int    `json:"id"`
	Definition          string `json:"definition"`
	AvgCharges          string `json:"avg_charges,omitempty"`
	AvgPayments         string `json:"avg_payments,omitempty"`
	AvgMedicarePayments string `json:"avg_medicare_payments,omitempty"`

	AvgChargesPercentile          *Percentile `json:"avg_charges_percentile,omitempty"`
	AvgPaymentsPercentile         *Percentile `json:"avg_payments_percentile,omitempty"`
	AvgMedicarePaymentsPercentile *Percentile `json:"avg_medicare_payments_percentile,omitempty"`
}

// PercentileScale is the number of fractional digits kept on percentile ranks.
const PercentileScale = 2

// Percentile is a percentile rank. It always renders with PercentileScale
// fractional digits, so 0.5 prints as "0.50".
type Percentile struct {
	decimal.Decimal
}

func (p Percentile) String() string {
	return p.StringFixed(PercentileScale)
}

func (p Percentile) MarshalJSON() ([]byte, error) {
	return []byte(`"` + p.String() + `"`), nil
}

// HasCharges reports whether the amount fields were populated.
func (c *ChargeClassification) HasCharges() bool {
	return c.AvgCharges != "" || c.AvgPayments != "" || c.AvgMedicarePayments != ""
}

// Provider is a hospital or facility.
type Provider struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Street string `json:"street"`
	City   string `json:"city"`
	State  string `json:"state"`
	Zip    string `json:"zip"`
}

// ComparisonResult pairs one provider with one classification snapshot.
type ComparisonResult struct {
	Setting        Setting              `json:"setting"`
	Provider       Provider             `json:"provider"`
	Classification ChargeClassification `json:"classification"`
}
