package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/teatrade/auction-ingest/internal/cleaning"
	"github.com/teatrade/auction-ingest/internal/config"
	"github.com/teatrade/auction-ingest/internal/parser"
)

func newTestResolver() *Resolver {
	noise := config.DefaultMapping().NoiseSet()
	return NewResolver(cleaning.NewDateParser(noise, zap.NewNop()), noise, zap.NewNop())
}

func metadataTable(saleCodes []string, saleDates []string) parser.Table {
	n := len(saleCodes)
	if len(saleDates) > n {
		n = len(saleDates)
	}
	rows := make([][]string, n)
	for i := range rows {
		code, date := "", ""
		if i < len(saleCodes) {
			code = saleCodes[i]
		}
		if i < len(saleDates) {
			date = saleDates[i]
		}
		rows[i] = []string{code, date}
	}
	return parser.Table{
		Header: []string{config.FieldSaleNumberInternal, config.FieldSaleDateInternal},
		Rows:   rows,
	}
}

func TestResolver_FromFilename(t *testing.T) {
	r := newTestResolver()

	t.Run("Expect: the Sale_No family to yield number and ordinal date", func(t *testing.T) {
		meta := r.FromFilename("Mombasa_Sale_No_42_10th_October_2025.xlsx")
		require.NotNil(t, meta.SaleNumber)
		assert.Equal(t, "42", *meta.SaleNumber)
		require.NotNil(t, meta.SaleDate)
		assert.Equal(t, "2025-10-10", *meta.SaleDate)
	})

	t.Run("Expect: day ranges to keep the first day", func(t *testing.T) {
		meta := r.FromFilename("Sale_No_40_14th_15th_October_2025.xlsx")
		require.NotNil(t, meta.SaleNumber)
		assert.Equal(t, "40", *meta.SaleNumber)
		require.NotNil(t, meta.SaleDate)
		assert.Equal(t, "2025-10-14", *meta.SaleDate)
	})

	t.Run("Expect: the parenthesized family to yield number and date", func(t *testing.T) {
		meta := r.FromFilename("Sale 35 (29-Jul-2025).csv")
		require.NotNil(t, meta.SaleNumber)
		assert.Equal(t, "35", *meta.SaleNumber)
		require.NotNil(t, meta.SaleDate)
		assert.Equal(t, "2025-07-29", *meta.SaleDate)
	})

	t.Run("Expect: GeneralReport to yield only a number", func(t *testing.T) {
		meta := r.FromFilename("GeneralReport(17).csv")
		require.NotNil(t, meta.SaleNumber)
		assert.Equal(t, "17", *meta.SaleNumber)
		assert.Nil(t, meta.SaleDate)
	})

	t.Run("Expect: an unknown filename to yield nothing", func(t *testing.T) {
		meta := r.FromFilename("weekly_results.csv")
		assert.Nil(t, meta.SaleNumber)
		assert.Nil(t, meta.SaleDate)
	})
}

func TestResolver_FromTable(t *testing.T) {
	r := newTestResolver()

	t.Run("Expect: the column mode to pick the dominant sale code", func(t *testing.T) {
		table := metadataTable(
			[]string{"Sale 35 - M2", "Sale 35 - M2", "Sale 36 - M2", "", "nan"},
			nil,
		)
		meta := r.FromTable(table)
		require.NotNil(t, meta.SaleNumber)
		assert.Equal(t, "35", *meta.SaleNumber)
	})

	t.Run("Expect: serial dates in the internal column to parse", func(t *testing.T) {
		table := metadataTable(nil, []string{"45210", "45210", "45211"})
		meta := r.FromTable(table)
		require.NotNil(t, meta.SaleDate)
		assert.Equal(t, "2023-10-11", *meta.SaleDate)
	})

	t.Run("Expect: a table without metadata columns to yield nothing", func(t *testing.T) {
		meta := r.FromTable(parser.Table{Header: []string{"broker"}, Rows: [][]string{{"ABC"}}})
		assert.Nil(t, meta.SaleNumber)
		assert.Nil(t, meta.SaleDate)
	})
}

func TestResolver_Resolve(t *testing.T) {
	r := newTestResolver()

	t.Run("Expect: embedded values to beat filename values", func(t *testing.T) {
		table := metadataTable([]string{"Sale 36"}, []string{"45210"})
		meta := r.Resolve("Sale_No_42_10th_October_2025.xlsx", table)
		require.NotNil(t, meta.SaleNumber)
		assert.Equal(t, "36", *meta.SaleNumber)
		require.NotNil(t, meta.SaleDate)
		assert.Equal(t, "2023-10-11", *meta.SaleDate)
	})

	t.Run("Expect: each field to fall back independently", func(t *testing.T) {
		// number embedded, date only in the filename
		table := metadataTable([]string{"Sale 36"}, []string{""})
		meta := r.Resolve("Sale_No_42_10th_October_2025.xlsx", table)
		require.NotNil(t, meta.SaleNumber)
		assert.Equal(t, "36", *meta.SaleNumber)
		require.NotNil(t, meta.SaleDate)
		assert.Equal(t, "2025-10-10", *meta.SaleDate)
	})

	t.Run("Expect: absent sources to leave fields null", func(t *testing.T) {
		meta := r.Resolve("results.csv", parser.Table{})
		assert.Nil(t, meta.SaleNumber)
		assert.Nil(t, meta.SaleDate)
	})
}
