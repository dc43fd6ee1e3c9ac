package parquetio

import (
	"fmt"
	"os"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"

	"github.com/gyeh/chargecompare/internal/model"
)

// Writer streams RegionalRow records to a zstd-compressed Parquet file.
type Writer struct {
	file   *os.File
	writer *parquet.GenericWriter[model.RegionalRow]
	count  int
}

// Create creates (or truncates) path and returns a Writer over it.
func Create(path string) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create parquet file: %w", err)
	}
	w := parquet.NewGenericWriter[model.RegionalRow](f,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedDefault}),
		parquet.CreatedBy("chargecmp", "1.0", ""),
	)
	return &Writer{file: f, writer: w}, nil
}

// Write flattens results and appends them in order.
func (w *Writer) Write(results []model.ComparisonResult) (int, error) {
	rows := make([]model.RegionalRow, len(results))
	for i := range results {
		rows[i] = model.NewRegionalRow(&results[i])
	}
	n, err := w.writer.Write(rows)
	w.count += n
	if err != nil {
		return n, fmt.Errorf("write parquet rows: %w", err)
	}
	return n, nil
}

// Count returns the number of rows written so far.
func (w *Writer) Count() int {
	return w.count
}

// Close flushes the final row group and closes the file.
func (w *Writer) Close() error {
	if err := w.writer.Close(); err != nil {
		w.file.Close()
		return fmt.Errorf("close parquet writer: %w", err)
	}
	return w.file.Close()
}

// WriteRegional writes results to path in one call.
func WriteRegional(path string, results []model.ComparisonResult) error {
	w, err := Create(path)
	if err != nil {
		return err
	}
	if _, err := w.Write(results); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}
