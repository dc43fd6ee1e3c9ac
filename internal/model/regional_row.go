package model

// RegionalRow is the flat Parquet representation of one ComparisonResult.
// Amounts stay as text so the exported file carries the database values verbatim.
type RegionalRow struct {
	Setting string `parquet:"setting"`

	ProviderID     int64  `parquet:"provider_id"`
	ProviderName   string `parquet:"provider_name"`
	ProviderStreet string `parquet:"provider_street"`
	ProviderCity   string `parquet:"provider_city"`
	ProviderState  string `parquet:"provider_state"`
	ProviderZip    string `parquet:"provider_zip"`

	ClassificationID         int64  `parquet:"classification_id"`
	ClassificationDefinition string `parquet:"classification_definition"`

	AvgCharges          *string `parquet:"avg_charges,optional"`
	AvgPayments         *string `parquet:"avg_payments,optional"`
	AvgMedicarePayments *string `parquet:"avg_medicare_payments,optional"`
}

// NewRegionalRow flattens a ComparisonResult.
func NewRegionalRow(r *ComparisonResult) RegionalRow {
	return RegionalRow{
		Setting:                  string(r.Setting),
		ProviderID:               int64(r.Provider.ID),
		ProviderName:             r.Provider.Name,
		ProviderStreet:           r.Provider.Street,
		ProviderCity:             r.Provider.City,
		ProviderState:            r.Provider.State,
		ProviderZip:              r.Provider.Zip,
		ClassificationID:         int64(r.Classification.ID),
		ClassificationDefinition: r.Classification.Definition,
		AvgCharges:               optStr(r.Classification.AvgCharges),
		AvgPayments:              optStr(r.Classification.AvgPayments),
		AvgMedicarePayments:      optStr(r.Classification.AvgMedicarePayments),
	}
}

// ComparisonResult rebuilds the in-memory result from an exported row.
func (r *RegionalRow) ComparisonResult() ComparisonResult {
	return ComparisonResult{
		Setting: Setting(r.Setting),
		Provider: Provider{
			ID:     int(r.ProviderID),
			Name:   r.ProviderName,
			Street: r.ProviderStreet,
			City:   r.ProviderCity,
			State:  r.ProviderState,
			Zip:    r.ProviderZip,
		},
		Classification: ChargeClassification{
			ID:                  int(r.ClassificationID),
			Definition:          r.ClassificationDefinition,
			AvgCharges:          derefStr(r.AvgCharges),
			AvgPayments:         derefStr(r.AvgPayments),
			AvgMedicarePayments: derefStr(r.AvgMedicarePayments),
		},
	}
}

func optStr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func derefStr(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
