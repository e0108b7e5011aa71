package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/willibrandon/sip/internal/app"
	"github.com/willibrandon/sip/internal/config"
	"github.com/willibrandon/sip/internal/connection"
	"github.com/willibrandon/sip/internal/db"
	"github.com/willibrandon/sip/internal/logger"
	"github.com/willibrandon/sip/internal/profiles"
)

var (
	// Version info (set by ldflags)
	version = "dev"

	// Flags
	configPath string
	debug      bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "sip",
		Short: "Database connection picker",
		Long: `sip manages saved database connection profiles and recently used
connections, and opens a terminal picker to choose and test one.

Profiles:
  sip add <name>       Save a connection profile
  sip remove <name>    Delete a profile
  sip list             Print all profiles
  sip test <name>      Open a connection and report the server version

Running sip with no arguments starts the interactive picker.`,
		Version: version,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPicker()
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path (default ~/.config/sip/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	// Add subcommands
	rootCmd.AddCommand(
		newListCmd(),
		newAddCmd(),
		newRemoveCmd(),
		newTestCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		// Error already printed by cobra
		os.Exit(1)
	}
}

// loadConfig loads configuration and initializes logging.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	level := logger.LevelInfo
	if debug || cfg.Debug {
		level = logger.LevelDebug
	}
	logger.InitLogger(level, "")

	return cfg, nil
}

// runPicker starts the interactive picker TUI.
func runPicker() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	defer logger.Close()

	model, err := app.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to create application: %w", err)
	}
	defer model.Cleanup()

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}

// newListCmd prints saved profiles with their picklist label and
// description columns.
func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print all saved connection profiles",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			defer logger.Close()

			store, err := profiles.NewStore(cfg.ProfilesPath)
			if err != nil {
				return err
			}

			defaults := cfg.Defaults()
			env := connection.OSEnv{}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tCONNECTION\tPROVIDER")
			for _, p := range store.List() {
				p.ApplyDefaults(defaults)
				fmt.Fprintf(w, "%s\t%s\t%s\n",
					p.PickLabel(connection.PickItemProfile),
					p.PickDescription(defaults, env),
					p.Provider,
				)
			}
			return w.Flush()
		},
	}
}

// newAddCmd saves a new connection profile from flags.
func newAddCmd() *cobra.Command {
	var (
		server     string
		port       int
		database   string
		user       string
		password   string
		provider   string
		integrated bool
		encrypt    bool
		timeout    int
		connString string
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Save a connection profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			defer logger.Close()

			store, err := profiles.NewStore(cfg.ProfilesPath)
			if err != nil {
				return err
			}

			authType := connection.AuthSQLLogin
			if integrated {
				authType = connection.AuthIntegrated
			}

			profile := connection.Profile{
				Name: args[0],
				Info: connection.Info{
					Server:           server,
					Port:             port,
					Database:         database,
					User:             user,
					Password:         password,
					Encrypt:          encrypt,
					ConnectTimeout:   timeout,
					AuthType:         authType,
					ConnectionString: connString,
					Provider:         connection.Provider(provider),
				},
			}
			profile.ApplyDefaults(cfg.Defaults())

			saved, err := store.Add(profile)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved profile %q (%s)\n", saved.Name,
				saved.DisplayString(cfg.Defaults(), connection.OSEnv{}))
			return nil
		},
	}

	cmd.Flags().StringVar(&server, "server", "", "server host name")
	cmd.Flags().IntVar(&port, "port", 0, "server port (provider default when 0)")
	cmd.Flags().StringVar(&database, "database", "", "database name")
	cmd.Flags().StringVar(&user, "user", "", "login name")
	cmd.Flags().StringVar(&password, "password", "", "login password (stored in the profiles file)")
	cmd.Flags().StringVar(&provider, "provider", string(connection.ProviderSQLServer), "database provider: sqlserver, postgres, mysql")
	cmd.Flags().BoolVar(&integrated, "integrated", false, "use integrated (OS) authentication")
	cmd.Flags().BoolVar(&encrypt, "encrypt", false, "encrypt the connection")
	cmd.Flags().IntVar(&timeout, "timeout", 0, "connect timeout in seconds (configured default when 0)")
	cmd.Flags().StringVar(&connString, "connection-string", "", "raw connection string overriding the discrete fields")

	return cmd
}

// newRemoveCmd deletes a profile by name.
func newRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <name>",
		Short: "Delete a connection profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			defer logger.Close()

			store, err := profiles.NewStore(cfg.ProfilesPath)
			if err != nil {
				return err
			}
			if err := store.Remove(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed profile %q\n", args[0])
			return nil
		},
	}
}

// newTestCmd opens a connection for a profile and reports the result.
func newTestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "test <name>",
		Short: "Open a connection and report the server version",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			defer logger.Close()

			store, err := profiles.NewStore(cfg.ProfilesPath)
			if err != nil {
				return err
			}
			profile, ok := store.Get(args[0])
			if !ok {
				return fmt.Errorf("profile %q not found", args[0])
			}
			profile.ApplyDefaults(cfg.Defaults())

			ctx, cancel := context.WithTimeout(context.Background(),
				time.Duration(profile.ConnectTimeout)*time.Second+5*time.Second)
			defer cancel()

			start := time.Now()
			srv, err := db.Test(ctx, &profile.Info)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Connected to %s in %dms\n",
				profile.DisplayString(cfg.Defaults(), connection.OSEnv{}),
				time.Since(start).Milliseconds())
			fmt.Fprintln(cmd.OutOrStdout(), "Server version:", srv.ServerVersion)
			return nil
		},
	}
}
