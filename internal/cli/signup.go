package cli

import (
	"bufio"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/evcraddock/homebase/internal/auth"
	"github.com/evcraddock/homebase/internal/user"
)

func newSignupCmd() *cobra.Command {
	var p auth.SignupParams
	var server string

	cmd := &cobra.Command{
		Use:   "signup <ADMIN|REALTOR|BUYER>",
		Short: "Create an account and store its token",
		Long:  "Create an account with the given role. ADMIN and REALTOR accounts need a product key from an admin (see 'hb keygen').",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSignup(cmd, args[0], p, server)
		},
	}

	cmd.Flags().StringVar(&p.Name, "name", "", "full name")
	cmd.Flags().StringVar(&p.Email, "email", "", "email address")
	cmd.Flags().StringVar(&p.Phone, "phone", "", "phone number")
	cmd.Flags().StringVar(&p.Password, "password", "", "password (prompted if omitted)")
	cmd.Flags().StringVar(&p.ProductKey, "product-key", "", "registration key for ADMIN or REALTOR")
	cmd.Flags().StringVar(&server, "server", "", "server URL (default: from config or http://localhost:8080)")

	return cmd
}

func runSignup(cmd *cobra.Command, roleArg string, p auth.SignupParams, serverFlag string) error {
	role, ok := user.ParseRole(roleArg)
	if !ok {
		return fmt.Errorf("unknown role %q (want ADMIN, REALTOR or BUYER)", roleArg)
	}
	if role.Privileged() && p.ProductKey == "" {
		return fmt.Errorf("%s accounts require --product-key", role)
	}

	in, out := bufio.NewReader(cmd.InOrStdin()), cmd.OutOrStdout()
	var err error
	if p.Name, err = promptValue(in, out, "Name", p.Name); err != nil {
		return err
	}
	if p.Email, err = promptValue(in, out, "Email", p.Email); err != nil {
		return err
	}
	if p.Phone, err = promptValue(in, out, "Phone", p.Phone); err != nil {
		return err
	}
	if p.Password, err = promptValue(in, out, "Password", p.Password); err != nil {
		return err
	}

	serverURL := serverFlag
	if serverURL == "" {
		serverURL = getServerURL()
	}

	token, err := newClientFor(serverURL, "").Signup(role, p)
	if err != nil {
		return fmt.Errorf("signing up: %w", err)
	}

	if err := storeSession(serverFlag, p.Email, token); err != nil {
		return err
	}

	if isJSON() {
		return printJSON(out, map[string]string{"email": p.Email, "role": string(role)})
	}
	fmt.Fprintf(out, "✓ Signed up as %s (%s). You're logged in!\n", p.Email, role)
	return nil
}
