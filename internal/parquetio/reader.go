// Package parquetio exports regional results to Parquet and reads them back.
package parquetio

import (
	"fmt"
	"io"
	"os"

	"github.com/parquet-go/parquet-go"

	"github.com/gyeh/chargecompare/internal/model"
)

// Reader wraps a parquet GenericReader for streaming RegionalRow records.
type Reader struct {
	file   *os.File
	reader *parquet.GenericReader[model.RegionalRow]
}

// Open opens a Parquet file written by Writer and checks its schema.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open parquet file: %w", err)
	}

	stat, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat parquet file: %w", err)
	}

	pf, err := parquet.OpenFile(f, stat.Size())
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("open parquet: %w", err)
	}
	if err := ValidateSchema(pf.Schema()); err != nil {
		f.Close()
		return nil, err
	}

	r := parquet.NewGenericReader[model.RegionalRow](pf)
	return &Reader{file: f, reader: r}, nil
}

// NumRows returns the total number of rows in the file.
func (r *Reader) NumRows() int64 {
	return r.reader.NumRows()
}

// Read reads up to len(rows) records. Returns io.EOF when done.
func (r *Reader) Read(rows []model.RegionalRow) (int, error) {
	n, err := r.reader.Read(rows)
	if err != nil && err != io.EOF {
		return n, fmt.Errorf("read parquet rows: %w", err)
	}
	return n, err
}

// ReadAll reads every remaining row as a ComparisonResult, in file order.
func (r *Reader) ReadAll() ([]model.ComparisonResult, error) {
	out := make([]model.ComparisonResult, 0, r.NumRows())
	buf := make([]model.RegionalRow, 256)
	for {
		n, err := r.Read(buf)
		for i := 0; i < n; i++ {
			out = append(out, buf[i].ComparisonResult())
		}
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return out, err
		}
	}
}

// Close releases all resources.
func (r *Reader) Close() error {
	if err := r.reader.Close(); err != nil {
		r.file.Close()
		return err
	}
	return r.file.Close()
}
