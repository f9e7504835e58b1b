package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newMessagesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "messages <id>",
		Short: "List inquiries on a listing you own",
		Args:  cobra.ExactArgs(1),
		RunE:  runMessages,
	}
}

func runMessages(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	msgs, err := newAPIClient().ListMessages(id)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if isJSON() {
		return printJSON(out, msgs)
	}

	if len(msgs) > 0 {
		fmt.Fprintf(out, "Messages (%d):\n", len(msgs))
	}
	printMessages(out, msgs)
	return nil
}
