package cli

import (
	"github.com/spf13/cobra"

	"github.com/evcraddock/homebase/internal/listing"
)

func newSearchCmd() *cobra.Command {
	var city, propertyType string
	var minPrice, maxPrice float64

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search listings",
		Long:  "Search listings by city, price range and property type. Omitted filters match everything.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := listing.Filter{City: city}
			if cmd.Flags().Changed("min-price") {
				f.MinPrice = &minPrice
			}
			if cmd.Flags().Changed("max-price") {
				f.MaxPrice = &maxPrice
			}
			if propertyType != "" {
				t, err := listing.ParsePropertyType(propertyType)
				if err != nil {
					return err
				}
				f.PropertyType = t
			}
			return runSearch(cmd, f)
		},
	}

	cmd.Flags().StringVar(&city, "city", "", "exact city name")
	cmd.Flags().Float64Var(&minPrice, "min-price", 0, "minimum price, inclusive")
	cmd.Flags().Float64Var(&maxPrice, "max-price", 0, "maximum price, inclusive")
	cmd.Flags().StringVar(&propertyType, "type", "", "property type (RESIDENTIAL|CONDO)")

	return cmd
}

func runSearch(cmd *cobra.Command, f listing.Filter) error {
	summaries, err := newAPIClient().SearchListings(f)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if isJSON() {
		return printJSON(out, summaries)
	}
	return printListingTable(out, summaries)
}
