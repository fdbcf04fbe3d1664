package system

import (
	"context"
	"fmt"
	"time"

	"github.com/julianstephens/moodlog/internal/backup"
	"github.com/julianstephens/moodlog/internal/cli"
	"github.com/julianstephens/moodlog/internal/constants"
	"github.com/julianstephens/moodlog/internal/migration"
)

type pinger interface {
	Ping(ctx context.Context) error
}

type runnerProvider interface {
	MigrationRunner() (*migration.Runner, error)
}

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	report := func(name string, err error) {
		if err != nil {
			fmt.Printf("❌ %s: FAIL\n", name)
			fmt.Printf("   Error: %v\n", err)
			hasError = true
			return
		}
		fmt.Printf("✓ %s: OK\n", name)
	}
	skip := func(name, reason string) {
		fmt.Printf("⊘ %s: SKIPPED (%s)\n", name, reason)
	}

	reachErr := checkStorageReachable(ctx)
	report("Storage reachable", reachErr)
	reachable := reachErr == nil

	_, hasSchema := ctx.Store.(runnerProvider)
	switch {
	case !reachable:
		skip("Schema version", "storage not reachable")
		skip("Migrations complete", "storage not reachable")
	case !hasSchema:
		skip("Schema version", "storage has no schema")
		skip("Migrations complete", "storage has no schema")
	default:
		report("Schema version", checkSchemaVersion(ctx))
		report("Migrations complete", checkMigrationsComplete(ctx))
	}

	if backup.Supported(ctx.Store.GetConfigPath()) {
		if err := checkBackupsPresent(ctx); err != nil {
			fmt.Printf("⚠ Backups present: WARNING\n")
			fmt.Printf("   %v\n", err)
		} else {
			fmt.Printf("✓ Backups present: OK\n")
		}
	} else {
		skip("Backups present", "storage is not a local file")
	}

	if reachable {
		report("Mood data", checkMoodData(ctx))
	} else {
		skip("Mood data", "storage not reachable")
	}

	report("Clock/timezone", checkClockTimezone(ctx))

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	fmt.Println("All diagnostics passed!")
	return nil
}

func checkStorageReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load storage: %w", err)
	}
	if p, ok := ctx.Store.(pinger); ok {
		if err := p.Ping(context.Background()); err != nil {
			return fmt.Errorf("failed to query database: %w", err)
		}
	}
	return nil
}

func versions(ctx *cli.Context) (current, latest int, err error) {
	rp, ok := ctx.Store.(runnerProvider)
	if !ok {
		return 0, 0, nil
	}
	runner, err := rp.MigrationRunner()
	if err != nil {
		return 0, 0, err
	}
	if current, err = runner.GetCurrentVersion(); err != nil {
		return 0, 0, fmt.Errorf("failed to get current schema version: %w", err)
	}
	if latest, err = runner.GetLatestVersion(); err != nil {
		return 0, 0, fmt.Errorf("failed to get latest schema version: %w", err)
	}
	return current, latest, nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	current, latest, err := versions(ctx)
	if err != nil {
		return err
	}
	if current > latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", current, latest)
	}
	return nil
}

func checkMigrationsComplete(ctx *cli.Context) error {
	rp, ok := ctx.Store.(runnerProvider)
	if !ok {
		return nil
	}
	runner, err := rp.MigrationRunner()
	if err != nil {
		return err
	}
	pending, err := runner.Pending()
	if err != nil {
		return fmt.Errorf("failed to check pending migrations: %w", err)
	}
	if pending > 0 {
		return fmt.Errorf("migrations incomplete: %d pending, run '%s migrate'", pending, constants.AppName)
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with '%s backup create'", constants.AppName)
	}
	return nil
}

func checkMoodData(ctx *cli.Context) error {
	st, err := ctx.Mood.Load(context.Background())
	if err != nil {
		return err
	}
	if st.Version > constants.SchemaVersionCurrent {
		return fmt.Errorf("mood data version %d is newer than supported version %d", st.Version, constants.SchemaVersionCurrent)
	}
	return nil
}

func checkClockTimezone(ctx *cli.Context) error {
	now := time.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	if ctx.Config != nil {
		if _, err := ctx.Config.Location(); err != nil {
			return err
		}
	}
	return nil
}
