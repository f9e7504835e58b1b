package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/evcraddock/homebase/internal/auth"
	"github.com/evcraddock/homebase/internal/user"
)

func newKeygenCmd() *cobra.Command {
	var local bool

	cmd := &cobra.Command{
		Use:   "keygen <email> <ADMIN|REALTOR|BUYER>",
		Short: "Generate a registration product key",
		Long: "Generate the product key that lets <email> sign up with the given role.\n" +
			"By default the server issues it (admin token required). With --local the key\n" +
			"is derived from HB_PRODUCT_KEY_SECRET, which bootstraps the first admin.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runKeygen(cmd, args[0], args[1], local)
		},
	}

	cmd.Flags().BoolVar(&local, "local", false, "derive the key from HB_PRODUCT_KEY_SECRET instead of asking the server")

	return cmd
}

func runKeygen(cmd *cobra.Command, email, roleArg string, local bool) error {
	role, ok := user.ParseRole(roleArg)
	if !ok {
		return fmt.Errorf("unknown role %q (want ADMIN, REALTOR or BUYER)", roleArg)
	}

	var key string
	var err error
	if local {
		key, err = localProductKey(email, role)
	} else {
		key, err = newAPIClient().ProductKey(email, role)
	}
	if err != nil {
		return fmt.Errorf("generating product key: %w", err)
	}

	out := cmd.OutOrStdout()
	if isJSON() {
		return printJSON(out, map[string]string{"email": email, "role": string(role), "product_key": key})
	}
	fmt.Fprintln(out, key)
	return nil
}

func localProductKey(email string, role user.Role) (string, error) {
	secret := os.Getenv("HB_PRODUCT_KEY_SECRET")
	if secret == "" {
		return "", fmt.Errorf("HB_PRODUCT_KEY_SECRET is not set")
	}
	svc := auth.NewService(nil, auth.NewBcryptHasher(bcrypt.DefaultCost), nil, secret)
	return svc.GenerateProductKey(email, role)
}
