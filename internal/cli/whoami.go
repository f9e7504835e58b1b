package cli

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/evcraddock/homebase/internal/client"
)

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in account",
		Long:  "Checks the connection to the server and shows the account behind the stored token.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWhoami(cmd)
		},
	}
}

func runWhoami(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()
	serverURL := getServerURL()
	token := getToken()

	if !isJSON() {
		fmt.Fprintf(out, "Server:  %s\n", serverURL)
	}

	if token == "" {
		if isJSON() {
			return printJSON(out, map[string]interface{}{"server": serverURL, "logged_in": false})
		}
		fmt.Fprintln(out, "Token:   not configured")
		fmt.Fprintln(out, "\nRun 'hb login' to authenticate.")
		return nil
	}

	u, err := newClientFor(serverURL, token).Me()
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized {
		fmt.Fprintln(out, "Status:  ✗ token rejected")
		fmt.Fprintln(out, "\nRun 'hb login' to re-authenticate.")
		return nil
	}
	if err != nil {
		return err
	}

	if isJSON() {
		return printJSON(out, u)
	}
	printUser(out, u)
	return nil
}
