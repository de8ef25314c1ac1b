package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/shelfscan/shelfscan/internal/app"
	"github.com/shelfscan/shelfscan/internal/catalogapi"
	"github.com/shelfscan/shelfscan/internal/query"
	"github.com/shelfscan/shelfscan/internal/report"
	"github.com/shelfscan/shelfscan/internal/state"
)

type listOptions struct {
	query       string
	brand       string
	store       string
	maxPrice    float64
	sort        string
	format      string
	interactive bool
}

var listOpts listOptions

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the filtered product list",
	Long:  "list loads the catalog once, applies the same filters and sort as the TUI and prints the results as a table, JSON or YAML.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := app.Setup(configPath)
		if err != nil {
			return err
		}
		log.SetOutput(cmd.ErrOrStderr())
		return runList(cmd.Context(), cmd.OutOrStdout(), svc.Client, svc.Store, listOpts)
	},
}

func init() {
	listCmd.Flags().StringVar(&listOpts.query, "query", "", "Match products whose name or brand contains this text")
	listCmd.Flags().StringVar(&listOpts.brand, "brand", query.All, "Only show this brand")
	listCmd.Flags().StringVar(&listOpts.store, "store", query.All, "Only show this store")
	listCmd.Flags().Float64Var(&listOpts.maxPrice, "max-price", query.PriceCeiling, "Hide products above this price")
	listCmd.Flags().StringVar(&listOpts.sort, "sort", string(query.SortName), "Sort by name, price-low, price-high or rating")
	listCmd.Flags().StringVarP(&listOpts.format, "format", "o", string(report.FormatTable), "Output format: table, json or yaml")
	listCmd.Flags().BoolVarP(&listOpts.interactive, "interactive", "i", false, "Pick filters with a prompt before printing")
}

// queryState converts the flags into a query state.
func (o listOptions) queryState() (query.State, error) {
	sortKey, err := query.ParseSortKey(o.sort)
	if err != nil {
		return query.State{}, err
	}
	s := query.DefaultState()
	s.Query = o.query
	s.Sort = sortKey
	s.MaxPrice = query.ClampPrice(o.maxPrice)
	if o.brand != "" {
		s.Brand = o.brand
	}
	if o.store != "" {
		s.Store = o.store
	}
	return s, nil
}

func runList(ctx context.Context, w io.Writer, source catalogapi.Source, store *state.Store, opts listOptions) error {
	format, err := report.ParseFormat(opts.format)
	if err != nil {
		return err
	}
	s, err := opts.queryState()
	if err != nil {
		return err
	}

	if _, err := app.LoadCatalog(ctx, source, store); err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	products := store.Catalog().Products

	if opts.interactive {
		s, err = promptFilters(products, s)
		if err != nil {
			return err
		}
	}

	return report.Write(w, format, report.Build(products, s))
}

// promptFilters lets the user edit s with choices taken from the loaded catalog.
func promptFilters(products []catalogapi.Product, s query.State) (query.State, error) {
	options := query.OptionsFor(products)
	sortValue := string(s.Sort)
	maxPrice := strconv.FormatFloat(query.ClampPrice(s.MaxPrice), 'f', -1, 64)

	sortOptions := make([]huh.Option[string], 0, len(query.SortKeys()))
	for _, k := range query.SortKeys() {
		sortOptions = append(sortOptions, huh.NewOption(k.Label(), string(k)))
	}

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Search").
				Placeholder("name or brand").
				Value(&s.Query),
			huh.NewSelect[string]().
				Title("Brand").
				Options(huh.NewOptions(options.Brands...)...).
				Value(&s.Brand),
			huh.NewSelect[string]().
				Title("Store").
				Options(huh.NewOptions(options.Stores...)...).
				Value(&s.Store),
			huh.NewSelect[string]().
				Title("Sort by").
				Options(sortOptions...).
				Value(&sortValue),
			huh.NewInput().
				Title("Max price (EGP)").
				Value(&maxPrice).
				Validate(validatePrice),
		),
	).Run()
	if err != nil {
		return query.State{}, err
	}

	s.Sort, err = query.ParseSortKey(sortValue)
	if err != nil {
		return query.State{}, err
	}
	price, _ := strconv.ParseFloat(maxPrice, 64)
	s.MaxPrice = query.ClampPrice(price)
	return s, nil
}

func validatePrice(v string) error {
	price, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fmt.Errorf("enter a number")
	}
	if price < 0 {
		return fmt.Errorf("price cannot be negative")
	}
	return nil
}
