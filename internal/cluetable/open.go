package cluetable

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"

	"github.com/bodul/xwgrid/internal/grid"
)

// Source names where a clue table lives.
type Source struct {
	Path string
	// Table is the SQLite table name; ignored for CSV sources.
	Table string
}

// Open loads a clue table, choosing the decoder from the file extension:
// .csv, .csv.zst, or .db/.sqlite/.sqlite3.
func Open(ctx context.Context, src Source) (grid.Table, error) {
	name := strings.ToLower(src.Path)
	switch {
	case strings.HasSuffix(name, ".csv"):
		f, err := os.Open(src.Path)
		if err != nil {
			return grid.Table{}, err
		}
		defer f.Close()
		return ReadCSV(f)
	case strings.HasSuffix(name, ".csv.zst"):
		f, err := os.Open(src.Path)
		if err != nil {
			return grid.Table{}, err
		}
		defer f.Close()
		return ReadCompressedCSV(f)
	}

	switch filepath.Ext(name) {
	case ".db", ".sqlite", ".sqlite3":
		return LoadSQLite(ctx, src.Path, src.Table)
	}
	return grid.Table{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, src.Path)
}

// ReadCompressedCSV decodes a zstd stream holding a CSV clue table.
func ReadCompressedCSV(r io.Reader) (grid.Table, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return grid.Table{}, fmt.Errorf("zstd reader: %w", err)
	}
	defer dec.Close()

	t, err := ReadCSV(dec)
	if err != nil {
		return grid.Table{}, fmt.Errorf("decompress csv: %w", err)
	}
	return t, nil
}

// Load opens src and builds the grid from it.
func Load(ctx context.Context, src Source) (*grid.Grid, error) {
	t, err := Open(ctx, src)
	if err != nil {
		return nil, err
	}
	g, err := grid.New(t)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", src.Path, err)
	}
	return g, nil
}
