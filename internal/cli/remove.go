package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a listing you own",
		Long:  "Remove a listing together with its images and messages.",
		Args:  cobra.ExactArgs(1),
		RunE:  runRemove,
	}
}

func runRemove(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	if err := newAPIClient().DeleteListing(id); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if isJSON() {
		return printJSON(out, map[string]interface{}{
			"id":      id,
			"removed": true,
		})
	}

	fmt.Fprintf(out, "Listing #%d removed.\n", id)
	return nil
}
