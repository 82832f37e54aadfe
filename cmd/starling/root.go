package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"starling/account"
	"starling/client"
	"starling/internal/platform/config"
	"starling/internal/platform/logger"
)

var (
	cfgFile string
	sandbox bool
	verbose bool

	log = logger.New()
)

var rootCmd = &cobra.Command{
	Use:   "starling",
	Short: "Inspect a Starling account from the command line",
	Long: `starling mirrors a Starling Bank account as local state and prints it.

Authentication uses a personal access token, supplied either via the
STARLING_ACCESS_TOKEN environment variable or an access_token entry in a
YAML config file (--config, or STARLING_CONFIG).`,
	SilenceUsage:  true,
	SilenceErrors: false,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help() //nolint:errcheck // nothing actionable on help failure
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to YAML config file")
	rootCmd.PersistentFlags().BoolVar(&sandbox, "sandbox", false, "use the sandbox environment")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log requests being made")
}

// newAccount builds the client and aggregate shared by all subcommands.
func newAccount(cmd *cobra.Command) (*account.Account, error) {
	path := cfgFile
	if path == "" {
		path = os.Getenv("STARLING_CONFIG")
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if sandbox {
		cfg.Sandbox = true
	}
	if cfg.AccessToken == "" {
		return nil, errors.New("no access token: set STARLING_ACCESS_TOKEN or access_token in the config file")
	}

	if verbose {
		env := "production"
		if cfg.Sandbox {
			env = "sandbox"
		}
		if cfg.BaseURL != "" {
			env = cfg.BaseURL
		}
		log.Printf("connecting to %s", env)
	}

	api := client.New(client.Config{
		AccessToken:  cfg.AccessToken,
		Sandbox:      cfg.Sandbox,
		BaseURL:      cfg.BaseURL,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})
	return account.New(cmd.Context(), api)
}
