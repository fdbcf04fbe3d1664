package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/moodlog/internal/backend"
	"github.com/julianstephens/moodlog/internal/cli"
	"github.com/julianstephens/moodlog/internal/cli/backups"
	"github.com/julianstephens/moodlog/internal/cli/moods"
	"github.com/julianstephens/moodlog/internal/cli/system"
	"github.com/julianstephens/moodlog/internal/config"
	"github.com/julianstephens/moodlog/internal/constants"
	apperrors "github.com/julianstephens/moodlog/internal/errors"
	"github.com/julianstephens/moodlog/internal/logger"
	"github.com/julianstephens/moodlog/internal/mood"
)

var CLI struct {
	Version      kong.VersionFlag
	Config       string `help:"YAML config file path." type:"path" default:"${config_file}"`
	Storage      string `help:"Storage target: a .db/.json file path, :memory:, or a PostgreSQL connection string. Credentials must NOT be embedded in the connection string; use MOODLOG_DB_CONNECTION or the OS keyring instead."`
	Timezone     string `help:"IANA timezone used for the hour and time category of new entries."`
	DateBasis    string `help:"Calendar used for entry dates (utc or local)."`
	LegacyLayout bool   `help:"Write the store as a bare date map for older readers."`
	Debug        bool   `help:"Enable debug logging."`

	Init    system.InitCmd    `cmd:"" help:"Initialize moodlog storage."`
	Migrate system.MigrateCmd `cmd:"" help:"Run database migrations."`
	Doctor  system.DoctorCmd  `cmd:"" help:"Run health checks and diagnostics."`
	Tui     system.TuiCmd     `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Record  moods.RecordCmd   `cmd:"" help:"Record a mood."`
	Stats   moods.StatsCmd    `cmd:"" help:"Show the mood breakdown."`
	History moods.HistoryCmd  `cmd:"" help:"Show entries recorded on a day."`
	Moods   moods.ListCmd     `cmd:"" help:"List the moods that can be recorded."`
	Reset   moods.ResetCmd    `cmd:"" help:"Clear recorded mood data."`
	Backup  struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage storage backups."`
	Keyring struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Store the PostgreSQL connection string in the OS keyring."`
		Get    system.KeyringGetCmd    `cmd:"" help:"Show the stored connection string with the password masked."`
		Delete system.KeyringDeleteCmd `cmd:"" help:"Remove the stored connection string."`
		Status system.KeyringStatusCmd `cmd:"" help:"Report keyring availability."`
	} `cmd:"" help:"Manage the PostgreSQL connection string in the OS keyring."`
}

// commands that open or skip the store on their own
var selfLoading = map[string]bool{
	"init":    true,
	"migrate": true,
	"doctor":  true,
	"keyring": true,
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Mood logging with per-day history and breakdowns"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":     constants.Version,
			"config_file": config.GetConfigPath(),
		},
	)

	cfg, err := loadConfig()
	if err != nil {
		apperrors.Fatal(err)
	}

	if err := logger.Init(logger.Config{Debug: cfg.Debug, ConfigDir: cfg.Dir()}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize file logging: %v\n", err)
		logger.InitDiscard()
	}

	command := strings.Fields(ctx.Command())[0]

	store, kind, err := backend.New(cfg.Storage)
	if err != nil && command != "keyring" {
		apperrors.Fatal(err)
	}
	logger.Debug("Storage selected", "type", kind)

	loc, err := cfg.Location()
	if err != nil {
		apperrors.Fatal(err)
	}

	appCtx := &cli.Context{
		Store:  store,
		Config: cfg,
		Mood: mood.NewService(store, mood.Options{
			Key:          cfg.StorageKey,
			Location:     loc,
			DateBasis:    cfg.DateBasis,
			LegacyLayout: cfg.LegacyLayout,
		}),
	}

	if !selfLoading[command] {
		if err := store.Load(); err != nil {
			apperrors.Fatal(err)
		}
	}
	if store != nil {
		defer store.Close()
	}

	if err := ctx.Run(appCtx); err != nil {
		logger.Error("Command execution failed", "command", command, "error", err)
		fmt.Fprintln(os.Stderr, apperrors.Format(err))
		if store != nil {
			_ = store.Close()
		}
		os.Exit(1)
	}
}

// loadConfig reads the YAML file and environment, then applies flags that
// were set on the command line.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(CLI.Config)
	if err != nil {
		return nil, err
	}

	if CLI.Storage != "" {
		cfg.Storage = CLI.Storage
	}
	if CLI.Timezone != "" {
		cfg.Timezone = CLI.Timezone
	}
	if CLI.DateBasis != "" {
		cfg.DateBasis = constants.DateBasis(CLI.DateBasis)
	}
	if CLI.LegacyLayout {
		cfg.LegacyLayout = true
	}
	if CLI.Debug {
		cfg.Debug = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}
