package cluetable

import (
	"bytes"
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/require"

	"github.com/bodul/xwgrid/internal/grid"
)

const miniCSV = `number,start_row,start_col,end_row,end_col,clue,answer
1,0,0,0,2,Feline,CAT
1,0,0,2,0,Dairy animal,COW
2,0,2,2,2,Foot digit,TOE
`

func TestReadCSV(t *testing.T) {
	tbl, err := ReadCSV(strings.NewReader(miniCSV))
	require.NoError(t, err)
	require.NoError(t, grid.Validate(tbl))
	require.Len(t, tbl.Rows, 3)

	want := grid.Span(1, 0, 0, 2, 0, "Dairy animal").WithAnswer("COW")
	require.Equal(t, want, tbl.Rows[1])

	g, err := grid.New(tbl)
	require.NoError(t, err)
	require.Equal(t, 3, g.Rows())
	require.Equal(t, 3, g.Cols())
}

func TestLoadRejectsHugeSpan(t *testing.T) {
	src := "number,start_row,start_col,end_row,end_col,clue\n1,0,0,0,9000000000000000000,x\n"
	tbl, err := ReadCSV(strings.NewReader(src))
	require.NoError(t, err)

	require.NotPanics(t, func() {
		_, err = grid.New(tbl)
	})
	require.ErrorIs(t, err, grid.ErrGridTooLarge)
}

func TestReadCSVColumnOrderAndCase(t *testing.T) {
	src := "\ufeffClue, End_Col ,end_row,START_COL,start_row,Number,source\n" +
		"\"Big, red\",3,1,0,1,4,ignored\n"
	tbl, err := ReadCSV(strings.NewReader(src))
	require.NoError(t, err)
	require.NoError(t, grid.Validate(tbl))
	require.Equal(t, grid.Span(4, 1, 0, 1, 3, "Big, red"), tbl.Rows[0])
	require.False(t, tbl.HasColumn(grid.ColAnswer))
}

func TestReadCSVNullsAndFloats(t *testing.T) {
	src := "number,start_row,start_col,end_row,end_col,clue\n" +
		"1,0.0,0,0,2.0,ok\n" +
		"2,,1,NaN,1,missing\n"
	tbl, err := ReadCSV(strings.NewReader(src))
	require.NoError(t, err)
	require.Equal(t, grid.Span(1, 0, 0, 0, 2, "ok"), tbl.Rows[0])
	require.False(t, tbl.Rows[1].StartRow.Valid)
	require.False(t, tbl.Rows[1].EndRow.Valid)

	err = grid.Validate(tbl)
	var ne *grid.NullCoordinateError
	require.ErrorAs(t, err, &ne)
	require.Equal(t, 1, ne.Row)
	require.Equal(t, grid.ColStartRow, ne.Column)
}

func TestReadCSVMissingColumn(t *testing.T) {
	src := "number,start_row,start_col,end_row,clue\n1,0,0,0,x\n"
	tbl, err := ReadCSV(strings.NewReader(src))
	require.NoError(t, err, "loaders do not check the schema")

	var se *grid.SchemaError
	require.ErrorAs(t, grid.Validate(tbl), &se)
	require.Equal(t, grid.ColEndCol, se.Column)
}

func TestReadCSVBadValues(t *testing.T) {
	for _, src := range []string{
		"number,start_row\nx,0\n",
		"number,start_row\n,0\n",
		"number,start_row\n1,1.5\n",
		"number,start_row\n1,two\n",
	} {
		_, err := ReadCSV(strings.NewReader(src))
		var ve *ValueError
		require.ErrorAs(t, err, &ve, src)
		require.Equal(t, 0, ve.Record)
		require.ErrorIs(t, err, ErrBadValue)
	}
}

func TestReadCSVEmpty(t *testing.T) {
	tbl, err := ReadCSV(strings.NewReader(""))
	require.NoError(t, err)
	require.Empty(t, tbl.Columns)
	require.ErrorIs(t, grid.Validate(tbl), grid.ErrMissingColumn)
}

func TestOpenCompressedCSV(t *testing.T) {
	var buf bytes.Buffer
	enc, err := zstd.NewWriter(&buf, zstd.WithEncoderLevel(zstd.SpeedFastest))
	require.NoError(t, err)
	_, err = enc.Write([]byte(miniCSV))
	require.NoError(t, err)
	require.NoError(t, enc.Close())

	path := filepath.Join(t.TempDir(), "mini.csv.zst")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	g, err := Load(context.Background(), Source{Path: path})
	require.NoError(t, err)
	require.Len(t, g.Clues(), 3)
	text, ok := g.AcrossClues().Get(1)
	require.True(t, ok)
	require.Equal(t, "Feline", text)
}

func TestOpenPlainCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Mini.CSV")
	require.NoError(t, os.WriteFile(path, []byte(miniCSV), 0o644))

	tbl, err := Open(context.Background(), Source{Path: path})
	require.NoError(t, err)
	require.Len(t, tbl.Rows, 3)
}

func TestOpenUnsupported(t *testing.T) {
	_, err := Open(context.Background(), Source{Path: "puzzle.xlsx"})
	require.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestLoadWrapsGridErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.csv")
	src := "number,start_row,start_col,end_row,end_col,clue\n1,0,0,2,2,diagonal\n"
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

	_, err := Load(context.Background(), Source{Path: path})
	require.ErrorIs(t, err, grid.ErrInvalidDirection)
	require.Contains(t, err.Error(), "bad.csv")
}

func seedSQLite(t *testing.T, stmts ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "puzzle.db")
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()
	for _, s := range stmts {
		_, err := db.Exec(s)
		require.NoError(t, err, s)
	}
	return path
}

const createClues = `CREATE TABLE clues (
	number INTEGER NOT NULL,
	start_row INTEGER,
	start_col INTEGER,
	end_row INTEGER,
	end_col INTEGER,
	clue TEXT NOT NULL,
	answer TEXT
)`

func TestLoadSQLite(t *testing.T) {
	path := seedSQLite(t, createClues,
		`INSERT INTO clues VALUES (1,0,0,0,2,'Feline','CAT')`,
		`INSERT INTO clues VALUES (1,0,0,2,0,'Dairy animal','COW')`,
		`INSERT INTO clues VALUES (2,0,2,2,2,'Foot digit',NULL)`,
	)

	tbl, err := LoadSQLite(context.Background(), path, "")
	require.NoError(t, err)
	require.NoError(t, grid.Validate(tbl))
	require.Equal(t, grid.Span(1, 0, 0, 0, 2, "Feline").WithAnswer("CAT"), tbl.Rows[0])
	require.Equal(t, "", tbl.Rows[2].Answer)

	g, err := Load(context.Background(), Source{Path: path})
	require.NoError(t, err)
	require.Equal(t, []int{1, 2}, g.DownClues().Numbers())
}

func TestLoadSQLiteNullCoordinate(t *testing.T) {
	path := seedSQLite(t, createClues,
		`INSERT INTO clues VALUES (1,0,0,0,2,'ok',NULL)`,
		`INSERT INTO clues VALUES (2,0,NULL,2,2,'hole',NULL)`,
	)
	_, err := Load(context.Background(), Source{Path: path, Table: "clues"})
	var ne *grid.NullCoordinateError
	require.ErrorAs(t, err, &ne)
	require.Equal(t, 1, ne.Row)
	require.Equal(t, grid.ColStartCol, ne.Column)
}

func TestLoadSQLiteCustomTableAndMissingColumn(t *testing.T) {
	path := seedSQLite(t,
		`CREATE TABLE puzzle_0703 (number INTEGER, start_row INTEGER, start_col INTEGER, end_row INTEGER, clue TEXT)`,
		`INSERT INTO puzzle_0703 VALUES (1,0,0,0,'x')`,
	)
	tbl, err := LoadSQLite(context.Background(), path, "puzzle_0703")
	require.NoError(t, err)
	require.ErrorIs(t, grid.Validate(tbl), grid.ErrMissingColumn)
}

func TestLoadSQLiteRejectsBadInput(t *testing.T) {
	_, err := LoadSQLite(context.Background(), "whatever.db", `clues"; DROP TABLE clues; --`)
	require.ErrorIs(t, err, ErrBadTableName)

	missing := filepath.Join(t.TempDir(), "nope.db")
	_, err = LoadSQLite(context.Background(), missing, "")
	require.ErrorIs(t, err, os.ErrNotExist)
	_, statErr := os.Stat(missing)
	require.ErrorIs(t, statErr, os.ErrNotExist, "missing database must not be created")
}
