package chargedata

import (
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/gyeh/chargecompare/internal/catalog"
	"github.com/gyeh/chargecompare/internal/model"
	"github.com/gyeh/chargecompare/internal/normalize"
)

// field binds a result-set column, by name, to a scan target.
type field struct {
	column string
	dest   any
}

// scanNamed scans row into fields by column name. Column order does not
// matter; a missing column is an error and unnamed columns are skipped.
func scanNamed(row pgx.CollectableRow, fields []field) error {
	fds := row.FieldDescriptions()
	dest := make([]any, len(fds))
	for _, f := range fields {
		idx := columnIndex(fds, f.column)
		if idx < 0 {
			return fmt.Errorf("missing column %q", f.column)
		}
		dest[idx] = f.dest
	}
	return row.Scan(dest...)
}

func columnIndex(fds []pgconn.FieldDescription, name string) int {
	for i, fd := range fds {
		if fd.Name == name {
			return i
		}
	}
	return -1
}

// mapper turns rows into entities for one setting's column names.
type mapper struct {
	idColumn         string
	definitionColumn string
}

func newMapper(p catalog.Procedures) mapper {
	return mapper{idColumn: p.IDColumn, definitionColumn: p.DefinitionColumn}
}

type classificationCols struct {
	id         int
	definition pgtype.Text
}

func (m mapper) classificationFields(c *classificationCols) []field {
	return []field{
		{m.idColumn, &c.id},
		{m.definitionColumn, &c.definition},
	}
}

type providerCols struct {
	id                       int
	name                     pgtype.Text
	street, city, state, zip pgtype.Text
}

func (c *providerCols) fields() []field {
	return []field{
		{catalog.ColProviderID, &c.id},
		{catalog.ColProviderName, &c.name},
		{catalog.ColProviderStreet, &c.street},
		{catalog.ColProviderCity, &c.city},
		{catalog.ColProviderState, &c.state},
		{catalog.ColProviderZip, &c.zip},
	}
}

func (c *providerCols) provider() model.Provider {
	return model.Provider{
		ID:     c.id,
		Name:   c.name.String,
		Street: c.street.String,
		City:   c.city.String,
		State:  c.state.String,
		Zip:    c.zip.String,
	}
}

type amountCols struct {
	charges, payments, medicare pgtype.Text
}

func (c *amountCols) fields() []field {
	return []field{
		{catalog.ColAvgCharges, &c.charges},
		{catalog.ColAvgPayments, &c.payments},
		{catalog.ColAvgMedicarePayments, &c.medicare},
	}
}

func (c *amountCols) apply(dst *model.ChargeClassification) {
	dst.AvgCharges = c.charges.String
	dst.AvgPayments = c.payments.String
	dst.AvgMedicarePayments = c.medicare.String
}

// classification maps an id+definition row.
func (m mapper) classification(row pgx.CollectableRow) (model.ChargeClassification, error) {
	var c classificationCols
	if err := scanNamed(row, m.classificationFields(&c)); err != nil {
		return model.ChargeClassification{}, err
	}
	return model.ChargeClassification{ID: c.id, Definition: c.definition.String}, nil
}

func (m mapper) provider(row pgx.CollectableRow) (model.Provider, error) {
	var c providerCols
	if err := scanNamed(row, c.fields()); err != nil {
		return model.Provider{}, err
	}
	return c.provider(), nil
}

// regional maps one pre-joined row: a full provider plus the classification
// id, definition and raw amounts. Percentiles are not part of this row.
func (m mapper) regional(setting model.Setting) pgx.RowToFunc[model.ComparisonResult] {
	return func(row pgx.CollectableRow) (model.ComparisonResult, error) {
		var (
			p providerCols
			c classificationCols
			a amountCols
		)
		fields := append(p.fields(), m.classificationFields(&c)...)
		fields = append(fields, a.fields()...)
		if err := scanNamed(row, fields); err != nil {
			return model.ComparisonResult{}, err
		}

		r := model.ComparisonResult{
			Setting:        setting,
			Provider:       p.provider(),
			Classification: model.ChargeClassification{ID: c.id, Definition: c.definition.String},
		}
		a.apply(&r.Classification)
		return r, nil
	}
}

// text maps a single string column, e.g. "state" or "city".
func text(column string) pgx.RowToFunc[string] {
	return func(row pgx.CollectableRow) (string, error) {
		var v pgtype.Text
		if err := scanNamed(row, []field{{column, &v}}); err != nil {
			return "", err
		}
		return v.String, nil
	}
}

func amounts(row pgx.CollectableRow) (amountCols, error) {
	var a amountCols
	if err := scanNamed(row, a.fields()); err != nil {
		return amountCols{}, err
	}
	return a, nil
}

// percentile maps a single percentile column, rounded to scale 2 half-up.
// A NULL rank is a conversion fault.
func percentile(column string) pgx.RowToFunc[model.Percentile] {
	return func(row pgx.CollectableRow) (model.Percentile, error) {
		var v pgtype.Text
		if err := scanNamed(row, []field{{column, &v}}); err != nil {
			return model.Percentile{}, err
		}
		if !v.Valid {
			return model.Percentile{}, fmt.Errorf("column %q is null", column)
		}
		return normalize.Percentile(v.String)
	}
}
