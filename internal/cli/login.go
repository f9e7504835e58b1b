package cli

import (
	"bufio"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/evcraddock/homebase/internal/client"
)

func newLoginCmd() *cobra.Command {
	var server, email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store a session token",
		Long:  "Signs in with email and password and saves the returned token for later commands.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogin(cmd, server, email, password)
		},
	}

	cmd.Flags().StringVar(&server, "server", "", "server URL (default: from config or http://localhost:8080)")
	cmd.Flags().StringVar(&email, "email", "", "email address (prompted if omitted)")
	cmd.Flags().StringVar(&password, "password", "", "password (prompted if omitted)")

	return cmd
}

func runLogin(cmd *cobra.Command, serverFlag, email, password string) error {
	in, out := bufio.NewReader(cmd.InOrStdin()), cmd.OutOrStdout()

	var err error
	if email, err = promptValue(in, out, "Email", email); err != nil {
		return err
	}
	if password, err = promptValue(in, out, "Password", password); err != nil {
		return err
	}

	serverURL := serverFlag
	if serverURL == "" {
		serverURL = getServerURL()
	}

	token, err := newClientFor(serverURL, "").Signin(email, password)
	if err != nil {
		return fmt.Errorf("signing in: %w", err)
	}

	if err := storeSession(serverFlag, email, token); err != nil {
		return err
	}

	fmt.Fprintln(out, "✓ Token saved. You're logged in!")
	return nil
}

// newClientFor creates a client for an explicit server URL.
func newClientFor(serverURL, token string) *client.Client {
	return client.New(serverURL, token)
}
