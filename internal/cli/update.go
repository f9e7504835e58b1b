package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/evcraddock/homebase/internal/listing"
)

// updateFlags maps flag names to the JSON fields of a listing update.
var updateFlags = map[string]string{
	"address":   "address",
	"city":      "city",
	"price":     "price",
	"land-size": "land_size",
	"bedrooms":  "bedrooms",
	"bathrooms": "bathrooms",
	"type":      "property_type",
}

func newUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change fields of a listing you own",
		Long:  "Update only the fields given as flags; everything else is left as it is.",
		Args:  cobra.ExactArgs(1),
		RunE:  runUpdate,
	}

	cmd.Flags().String("address", "", "street address")
	cmd.Flags().String("city", "", "city")
	cmd.Flags().Float64("price", 0, "asking price")
	cmd.Flags().Float64("land-size", 0, "land size")
	cmd.Flags().Int64("bedrooms", 0, "number of bedrooms")
	cmd.Flags().Float64("bathrooms", 0, "number of bathrooms")
	cmd.Flags().String("type", "", "property type (RESIDENTIAL|CONDO)")

	return cmd
}

// changedFields collects the flags the user set, keyed by JSON field name.
func changedFields(flags *pflag.FlagSet) (map[string]interface{}, error) {
	changes := make(map[string]interface{})
	var err error

	flags.Visit(func(f *pflag.Flag) {
		field, ok := updateFlags[f.Name]
		if !ok || err != nil {
			return
		}
		switch f.Name {
		case "price", "land-size", "bathrooms":
			changes[field], err = flags.GetFloat64(f.Name)
		case "bedrooms":
			changes[field], err = flags.GetInt64(f.Name)
		case "type":
			var t listing.PropertyType
			t, err = listing.ParsePropertyType(f.Value.String())
			changes[field] = string(t)
		default:
			changes[field] = f.Value.String()
		}
	})

	return changes, err
}

func runUpdate(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	changes, err := changedFields(cmd.Flags())
	if err != nil {
		return err
	}
	if len(changes) == 0 {
		return fmt.Errorf("nothing to update: pass at least one field flag")
	}

	d, err := newAPIClient().UpdateListing(id, changes)
	if err != nil {
		return fmt.Errorf("updating listing: %w", err)
	}

	out := cmd.OutOrStdout()
	if isJSON() {
		return printJSON(out, d)
	}

	fmt.Fprintln(out, "Listing updated.")
	printListingDetail(out, d)
	return nil
}
