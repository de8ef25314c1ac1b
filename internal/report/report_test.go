package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"
	"gotest.tools/v3/golden"

	"github.com/shelfscan/shelfscan/internal/catalogapi"
	"github.com/shelfscan/shelfscan/internal/query"
)

func testCatalog() []catalogapi.Product {
	return []catalogapi.Product{
		{ID: 1, Name: "USB Hub", Brand: "Ugreen", Store: "Ram", Price: 300, Rating: 4.1, Availability: "In Stock"},
		{ID: 2, Name: "AirPods Pro (2nd gen)", Brand: "Apple", Store: "Microohm", Price: 1250, Rating: 4.8, Availability: "Out of Stock"},
		{ID: 3, Name: "Galaxy S24 Ultra", Brand: "Samsung", Store: "Ekostra", Price: 1999.5, Rating: 4.6, Availability: "In Stock"},
		{ID: 4, Name: "MacBook Air", Brand: "Apple", Store: "Microohm", Price: 2500, Rating: 4.9, Availability: "In Stock"},
		{ID: 5, Name: "Anker 737 Power Bank", Brand: "Anker", Store: "Ram", Price: 899.99, Rating: 4.4, Availability: "In Stock"},
	}
}

func TestTable_Results(t *testing.T) {
	s := query.DefaultState()
	s.Query = "a"
	s.Sort = query.SortPriceHigh

	r := Build(testCatalog(), s)
	golden.Assert(t, r.Table(), "golden/table_results.golden")
}

func TestTable_Empty(t *testing.T) {
	s := query.DefaultState()
	s.Brand = "Nokia"
	s.MaxPrice = 150

	r := Build(nil, s)
	golden.Assert(t, r.Table(), "golden/table_empty.golden")
}

func TestTable_TruncatesLongNames(t *testing.T) {
	long := strings.Repeat("Ultra Wide Curved Gaming Monitor ", 3)
	r := Build([]catalogapi.Product{{ID: 1, Name: long, Brand: "LG", Store: "Ram", Price: 10}}, query.DefaultState())

	lines := strings.Split(r.Table(), "\n")
	require.GreaterOrEqual(t, len(lines), 5)
	row := lines[4]
	assert.Contains(t, row, "…")
	assert.NotContains(t, row, long)
	assert.Less(t, ansi.StringWidth(row), len(long))
}

func TestWrite_JSON(t *testing.T) {
	s := query.DefaultState()
	s.Brand = "Apple"

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatJSON, Build(testCatalog(), s)))

	var got struct {
		Query struct {
			Brand    string  `json:"brand"`
			MaxPrice float64 `json:"max_price"`
			Sort     string  `json:"sort"`
		} `json:"query"`
		Total    int                  `json:"total"`
		Count    int                  `json:"count"`
		Products []catalogapi.Product `json:"products"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "Apple", got.Query.Brand)
	assert.Equal(t, float64(query.PriceCeiling), got.Query.MaxPrice)
	assert.Equal(t, "name", got.Query.Sort)
	assert.Equal(t, 5, got.Total)
	assert.Equal(t, 1, got.Count)
	require.Len(t, got.Products, 1)
	assert.Equal(t, "AirPods Pro (2nd gen)", got.Products[0].Name)
}

func TestWrite_YAMLEmptyProductsIsList(t *testing.T) {
	s := query.DefaultState()
	s.MaxPrice = 0

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatYAML, Build(testCatalog(), s)))

	var got map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, 0, got["count"])
	assert.Equal(t, []any{}, got["products"])
	assert.Contains(t, buf.String(), "max_price: 0")
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": FormatTable, "JSON": FormatJSON, " yaml ": FormatYAML, "table": FormatTable} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseFormat("csv")
	assert.ErrorContains(t, err, "unknown format")
}

func TestPrice(t *testing.T) {
	assert.Equal(t, "50.00 EGP", Price(50))
	assert.Equal(t, "1,500.00 EGP", Price(1500))
	assert.Equal(t, "0.00 EGP", Price(0))
}
