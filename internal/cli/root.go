// Package cli defines the cobra command tree for homebase.
package cli

import (
	"database/sql"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/evcraddock/homebase/internal/client"
	"github.com/evcraddock/homebase/internal/db"
)

var (
	flagFormat string
	flagDB     string
)

// NewRootCmd creates the root cobra command with global flags.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "hb",
		Short:         "Browse and manage property listings",
		Long:          "A real-estate listing service. Run the API server, search listings, publish them as a realtor, and send inquiries as a buyer.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&flagFormat, "format", "text", "output format (text|json)")
	root.PersistentFlags().StringVar(&flagDB, "db", "", "SQLite database path for serve (default: ~/.config/hb/homebase.db)")

	root.AddCommand(
		newServeCmd(),
		newSignupCmd(),
		newLoginCmd(),
		newLogoutCmd(),
		newWhoamiCmd(),
		newSearchCmd(),
		newShowCmd(),
		newAddCmd(),
		newUpdateCmd(),
		newRemoveCmd(),
		newInquireCmd(),
		newMessagesCmd(),
		newKeygenCmd(),
		newUsersCmd(),
		newVersionCmd(),
	)

	return root
}

// openDB opens the SQLite database using the --db flag or default path.
// Used by the serve command to pass the DB to the web server.
func openDB() (*sql.DB, error) {
	path := flagDB
	if path == "" {
		var err error
		path, err = db.DefaultPath()
		if err != nil {
			return nil, err
		}
	}
	return db.Open(path)
}

// newAPIClient creates an HTTP client for the homebase API.
func newAPIClient() *client.Client {
	return client.New(getServerURL(), getToken())
}

// isJSON returns true if the --format flag is set to json.
func isJSON() bool {
	return flagFormat == "json"
}

// closeDB closes the database, logging any error to stderr.
func closeDB(database *sql.DB) {
	if err := database.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: closing database: %v\n", err)
	}
}

// parseID parses a listing ID argument.
func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid listing ID: %s", s)
	}
	return id, nil
}
