package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/evcraddock/homebase/internal/auth"
	"github.com/evcraddock/homebase/internal/logging"
	"github.com/evcraddock/homebase/internal/web"
)

func newServeCmd() *cobra.Command {
	var port int
	var envFile string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		Long:  "Start the HTTP JSON API. Settings come from HB_* environment variables, optionally loaded from an env file.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadEnvFile(envFile); err != nil {
				return err
			}
			if !cmd.Flags().Changed("port") {
				if v := os.Getenv("HB_PORT"); v != "" {
					p, err := strconv.Atoi(v)
					if err != nil {
						return fmt.Errorf("parsing HB_PORT: %w", err)
					}
					port = p
				}
			}
			return runServe(port)
		},
	}

	cmd.Flags().IntVar(&port, "port", 8080, "port to listen on (env HB_PORT)")
	cmd.Flags().StringVar(&envFile, "env-file", ".env", "file of HB_* settings to load if present")

	return cmd
}

// loadEnvFile loads settings from path without overriding variables that are
// already set. A missing file is not an error.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

func runServe(port int) error {
	logging.Setup(os.Getenv("HB_DEV_MODE") == "true")

	cfg, err := auth.ConfigFromEnv()
	if err != nil {
		return err
	}

	database, err := openDB()
	if err != nil {
		return err
	}
	defer closeDB(database)

	srv, err := web.NewServer(database, cfg)
	if err != nil {
		return err
	}

	return srv.ListenAndServe(port)
}
