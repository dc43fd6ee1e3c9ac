package parquetio

import (
	"fmt"
	"strings"

	"github.com/parquet-go/parquet-go"
)

var requiredColumns = []string{
	"setting",
	"provider_id",
	"provider_name",
	"classification_id",
	"classification_definition",
}

// ValidateSchema checks that schema carries the identifying columns of a
// regional export.
func ValidateSchema(schema *parquet.Schema) error {
	columns := make(map[string]bool)
	for _, field := range schema.Fields() {
		columns[strings.ToLower(field.Name())] = true
	}

	var missing []string
	for _, col := range requiredColumns {
		if !columns[col] {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}
	return nil
}
