// Package catalog names the stored procedures and result-set columns each
// setting is served by. Column names are a strict contract with the database.
package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gyeh/chargecompare/internal/model"
)

// Column names shared by both settings.
const (
	ColProviderID     = "provider id"
	ColProviderName   = "provider name"
	ColProviderStreet = "provider street"
	ColProviderCity   = "provider city"
	ColProviderState  = "provider state"
	ColProviderZip    = "provider zip"

	ColState = "state"
	ColCity  = "city"

	ColAvgCharges          = "avg charges"
	ColAvgPayments         = "avg payments"
	ColAvgMedicarePayments = "avg medicare payments"

	ColAvgChargesPercentile          = "avg charges percentile"
	ColAvgPaymentsPercentile         = "avg payments percentile"
	ColAvgMedicarePaymentsPercentile = "avg medicare payments percentile"
)

// Procedures is the procedure and column contract for one setting.
type Procedures struct {
	Setting model.Setting `yaml:"-"`

	Classifications         string `yaml:"classifications"`
	States                  string `yaml:"states"`
	CitiesToCompare         string `yaml:"cities_to_compare"`
	Cities                  string `yaml:"cities"`
	Providers               string `yaml:"providers"`
	ClassificationsByRegion string `yaml:"classifications_by_region"`
	Charges                 string `yaml:"charges"`
	RegionalCharges         string `yaml:"regional_charges"`

	// IDColumn and DefinitionColumn name the classification columns,
	// e.g. "drg id" and "drg definition".
	IDColumn         string `yaml:"id_column"`
	DefinitionColumn string `yaml:"definition_column"`
}

// Catalog holds the contract for every setting.
type Catalog struct {
	Inpatient  Procedures `yaml:"inpatient"`
	Outpatient Procedures `yaml:"outpatient"`
}

// Default returns the built-in catalog.
func Default() Catalog {
	return Catalog{
		Inpatient: Procedures{
			Setting:                 model.Inpatient,
			Classifications:         "inpatient.get_drgs",
			States:                  "inpatient.get_states",
			CitiesToCompare:         "inpatient.get_cities_to_compare",
			Cities:                  "inpatient.get_cities",
			Providers:               "inpatient.get_providers",
			ClassificationsByRegion: "inpatient.get_regional_drgs",
			Charges:                 "inpatient.get_charges",
			RegionalCharges:         "inpatient.get_regional_charges",
			IDColumn:                "drg id",
			DefinitionColumn:        "drg definition",
		},
		Outpatient: Procedures{
			Setting:                 model.Outpatient,
			Classifications:         "outpatient.get_apcs",
			States:                  "outpatient.get_states",
			CitiesToCompare:         "outpatient.get_cities_to_compare",
			Cities:                  "outpatient.get_cities",
			Providers:               "outpatient.get_providers",
			ClassificationsByRegion: "outpatient.get_regional_apcs",
			Charges:                 "outpatient.get_charges",
			RegionalCharges:         "outpatient.get_regional_charges",
			IDColumn:                "apc id",
			DefinitionColumn:        "apc definition",
		},
	}
}

// For returns the procedures for the given setting.
func (c Catalog) For(s model.Setting) (Procedures, error) {
	switch s {
	case model.Inpatient:
		return c.Inpatient, nil
	case model.Outpatient:
		return c.Outpatient, nil
	}
	return Procedures{}, fmt.Errorf("unknown setting %q", s)
}

// LoadFile reads a YAML override file and merges it over Default().
// Keys left out of the file keep their default value.
func LoadFile(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("read catalog file: %w", err)
	}
	var override Catalog
	if err := yaml.Unmarshal(data, &override); err != nil {
		return Catalog{}, fmt.Errorf("parse catalog file: %w", err)
	}

	c := Default()
	c.Inpatient.merge(override.Inpatient)
	c.Outpatient.merge(override.Outpatient)
	if err := c.Validate(); err != nil {
		return Catalog{}, err
	}
	return c, nil
}

// Validate checks that no procedure or column name is blank.
func (c Catalog) Validate() error {
	for _, p := range []Procedures{c.Inpatient, c.Outpatient} {
		for key, v := range p.fields() {
			if *v == "" {
				return fmt.Errorf("catalog %s: %s must not be empty", p.Setting, key)
			}
		}
	}
	return nil
}

func (p *Procedures) merge(o Procedures) {
	dst := p.fields()
	for key, v := range o.fields() {
		if *v != "" {
			*dst[key] = *v
		}
	}
}

func (p *Procedures) fields() map[string]*string {
	return map[string]*string{
		"classifications":           &p.Classifications,
		"states":                    &p.States,
		"cities_to_compare":         &p.CitiesToCompare,
		"cities":                    &p.Cities,
		"providers":                 &p.Providers,
		"classifications_by_region": &p.ClassificationsByRegion,
		"charges":                   &p.Charges,
		"regional_charges":          &p.RegionalCharges,
		"id_column":                 &p.IDColumn,
		"definition_column":         &p.DefinitionColumn,
	}
}
