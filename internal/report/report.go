package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/dustin/go-humanize"
	"go.yaml.in/yaml/v3"

	"github.com/shelfscan/shelfscan/internal/catalogapi"
	"github.com/shelfscan/shelfscan/internal/query"
)

// Format selects the output encoding of Write.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// ParseFormat validates s. An empty string yields FormatTable.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatTable, nil
	case FormatTable, FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown format %q (want table, json or yaml)", s)
	}
}

// maxNameWidth bounds the NAME column in table output.
const maxNameWidth = 36

// Report is a query result ready for output.
type Report struct {
	Query    query.State
	Total    int
	Count    int
	Products []catalogapi.Product
}

type queryView struct {
	Text     string  `json:"text" yaml:"text"`
	Brand    string  `json:"brand" yaml:"brand"`
	Store    string  `json:"store" yaml:"store"`
	MaxPrice float64 `json:"max_price" yaml:"max_price"`
	Sort     string  `json:"sort" yaml:"sort"`
}

// Build runs the pipeline over products and wraps the result.
func Build(products []catalogapi.Product, s query.State) Report {
	results := query.FilterAndSort(products, s)
	return Report{Query: s, Total: len(products), Count: len(results), Products: results}
}

// Write renders r to w in the given format.
func Write(w io.Writer, format Format, r Report) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(r.encodable()); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r.encodable()); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	default:
		_, err := io.WriteString(w, r.Table())
		return err
	}
}

func (r Report) encodable() any {
	products := r.Products
	if products == nil {
		products = []catalogapi.Product{}
	}
	return struct {
		Query    queryView            `json:"query" yaml:"query"`
		Total    int                  `json:"total" yaml:"total"`
		Count    int                  `json:"count" yaml:"count"`
		Products []catalogapi.Product `json:"products" yaml:"products"`
	}{
		Query: queryView{
			Text:     strings.TrimSpace(r.Query.Query),
			Brand:    r.Query.Brand,
			Store:    r.Query.Store,
			MaxPrice: query.ClampPrice(r.Query.MaxPrice),
			Sort:     string(r.Query.Sort),
		},
		Total:    r.Total,
		Count:    r.Count,
		Products: products,
	}
}

// Title is the one line summary shown above results.
func (r Report) Title() string {
	label := "All products"
	if text := strings.TrimSpace(r.Query.Query); text != "" {
		label = fmt.Sprintf("Results for %q", text)
	}
	return fmt.Sprintf("%s: %d of %d products, sorted by %s", label, r.Count, r.Total, r.Query.Sort.Label())
}

// Table renders r as aligned plain text columns.
func (r Report) Table() string {
	var b strings.Builder
	b.WriteString(r.Title())
	b.WriteString("\n")
	fmt.Fprintf(&b, "Brand: %s  Store: %s  Max price: %s\n\n", r.Query.Brand, r.Query.Store, Price(query.ClampPrice(r.Query.MaxPrice)))

	if len(r.Products) == 0 {
		b.WriteString("No products found\n")
		return b.String()
	}

	rows := [][]string{{"ID", "NAME", "BRAND", "STORE", "PRICE", "RATING", "AVAILABILITY"}}
	for _, p := range r.Products {
		rows = append(rows, []string{
			fmt.Sprintf("%d", p.ID),
			ansi.Truncate(p.Name, maxNameWidth, "…"),
			p.Brand,
			p.Store,
			Price(p.Price),
			fmt.Sprintf("%.1f", p.Rating),
			p.Availability,
		})
	}
	writeColumns(&b, rows, map[int]bool{4: true, 5: true})
	return b.String()
}

// writeColumns pads cells to the widest entry per column, separating columns
// with two spaces. Columns in rightAlign are padded on the left.
func writeColumns(b *strings.Builder, rows [][]string, rightAlign map[int]bool) {
	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], ansi.StringWidth(cell))
		}
	}
	for _, row := range rows {
		var line strings.Builder
		for i, cell := range row {
			if i > 0 {
				line.WriteString("  ")
			}
			pad := strings.Repeat(" ", widths[i]-ansi.StringWidth(cell))
			if rightAlign[i] {
				line.WriteString(pad + cell)
			} else {
				line.WriteString(cell + pad)
			}
		}
		b.WriteString(strings.TrimRight(line.String(), " "))
		b.WriteString("\n")
	}
}

// Price formats an amount in the catalog currency.
func Price(v float64) string {
	return humanize.FormatFloat("#,###.##", v) + " EGP"
}
