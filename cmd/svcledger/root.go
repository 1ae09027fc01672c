// Root command and application wiring for the svcledger CLI.
package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/opsledger/svcledger/internal/paths"
	"github.com/opsledger/svcledger/internal/renewal"
	"github.com/opsledger/svcledger/internal/repository"
	"github.com/opsledger/svcledger/internal/sqlite"
	"github.com/opsledger/svcledger/pkg/types"
)

const version = "0.1.0"

// Global flag values.
var (
	flagConfigDir string
	flagDataDir   string
	flagJSON      bool
	flagVerbose   bool
)

// Application state built by PersistentPreRunE for all subcommands.
var (
	appLog    zerolog.Logger
	appStore  *sqlite.Store
	appRepo   *repository.Repository
	appEngine *renewal.Engine
)

var rootCmd = &cobra.Command{
	Use:     "svcledger",
	Short:   "svcledger is a local-first subscription manager",
	Long: `svcledger tracks customers, service templates, subscribed services,
and renewal payments in an embedded store persisted as a single snapshot
file. Renewal dates advance only when a recorded payment is completed.`,
	Version:           version,
	PersistentPreRunE: openLedger,
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeLedger()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: platform config dir)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory (default: $(CWD)/.svcledger-db)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "enable debug logging")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(customerCmd)
	rootCmd.AddCommand(templateCmd)
	rootCmd.AddCommand(serviceCmd)
	rootCmd.AddCommand(payCmd)
	rootCmd.AddCommand(renewCmd)
	rootCmd.AddCommand(paymentsCmd)
	rootCmd.AddCommand(upcomingCmd)
	rootCmd.AddCommand(remindCmd)
}

// openLedger builds the logger, loads config, attaches the store, and
// wires the repository and renewal engine.
func openLedger(cmd *cobra.Command, args []string) error {
	appLog = newLogger()

	configDir, err := paths.ResolveConfigDir(flagConfigDir)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(configDir)
	if err != nil {
		return err
	}

	dataDir, err := paths.ResolveDataDir(flagDataDir, cfg.GetString(cfgKeyDataDir))
	if err != nil {
		return err
	}

	appStore = sqlite.NewStore(appLog)
	if err := appStore.Attach(types.Config{
		Backend: cfg.GetString(cfgKeyBackend),
		DataDir: dataDir,
	}); err != nil {
		return err
	}

	appRepo = repository.New(appStore, appLog)
	appEngine = renewal.New(appRepo, renewal.DemoAuthorizer{}, appLog)
	return nil
}

// closeLedger detaches the store. Mutations are already persisted; this
// only releases the scratch database.
func closeLedger() error {
	if appStore != nil {
		return appStore.Detach()
	}
	return nil
}

// newLogger builds a console zerolog logger honoring --verbose.
func newLogger() zerolog.Logger {
	level := zerolog.WarnLevel
	if flagVerbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
}
