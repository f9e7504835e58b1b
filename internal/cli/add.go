package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/evcraddock/homebase/internal/client"
	"github.com/evcraddock/homebase/internal/listing"
)

func newAddCmd() *cobra.Command {
	var l client.NewListing
	var images []string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Publish a listing (realtor only)",
		Long:  "Create a listing owned by the logged-in realtor, with any number of image URLs.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := listing.ParsePropertyType(l.PropertyType)
			if err != nil {
				return err
			}
			l.PropertyType = string(t)
			for _, url := range images {
				l.Images = append(l.Images, client.Image{URL: url})
			}
			return runAdd(cmd, l)
		},
	}

	cmd.Flags().StringVar(&l.Address, "address", "", "street address")
	cmd.Flags().StringVar(&l.City, "city", "", "city")
	cmd.Flags().Float64Var(&l.Price, "price", 0, "asking price")
	cmd.Flags().Float64Var(&l.LandSize, "land-size", 0, "land size")
	cmd.Flags().Int64Var(&l.Bedrooms, "bedrooms", 0, "number of bedrooms")
	cmd.Flags().Float64Var(&l.Bathrooms, "bathrooms", 0, "number of bathrooms")
	cmd.Flags().StringVar(&l.PropertyType, "type", "", "property type (RESIDENTIAL|CONDO)")
	cmd.Flags().StringArrayVar(&images, "image", nil, "image URL (repeatable)")
	for _, name := range []string{"address", "city", "price", "type"} {
		_ = cmd.MarkFlagRequired(name)
	}

	return cmd
}

func runAdd(cmd *cobra.Command, l client.NewListing) error {
	d, err := newAPIClient().CreateListing(l)
	if err != nil {
		return fmt.Errorf("adding listing: %w", err)
	}

	out := cmd.OutOrStdout()
	if isJSON() {
		return printJSON(out, d)
	}

	fmt.Fprintln(out, "Listing added successfully!")
	printListingDetail(out, d)
	return nil
}
