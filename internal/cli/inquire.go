package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newInquireCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inquire <id> <message...>",
		Short: "Message the realtor of a listing (buyer only)",
		Args:  cobra.MinimumNArgs(2),
		RunE:  runInquire,
	}
}

func runInquire(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	text := strings.TrimSpace(strings.Join(args[1:], " "))
	if text == "" {
		return fmt.Errorf("message must not be empty")
	}

	m, err := newAPIClient().Inquire(id, text)
	if err != nil {
		return fmt.Errorf("sending inquiry: %w", err)
	}

	out := cmd.OutOrStdout()
	if isJSON() {
		return printJSON(out, m)
	}

	fmt.Fprintf(out, "Message #%d sent to the realtor of listing #%d.\n", m.ID, id)
	return nil
}
