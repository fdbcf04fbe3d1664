package moods

import (
	"fmt"

	"github.com/julianstephens/moodlog/internal/cli"
	"github.com/julianstephens/moodlog/internal/constants"
)

type ResetCmd struct {
	All bool `help:"Clear every key in the storage namespace, not just mood data."`
	Yes bool `short:"y" help:"Skip the confirmation prompt."`
}

func (c *ResetCmd) scope(ctx *cli.Context) constants.ResetScope {
	if c.All {
		return constants.ResetScopeAll
	}
	if ctx.Config != nil && ctx.Config.ResetScope != "" {
		return ctx.Config.ResetScope
	}
	return constants.DefaultResetScope
}

func (c *ResetCmd) Run(ctx *cli.Context) error {
	if !c.Yes {
		ok, err := ctx.Ask("Confirm Reset", "Are you sure you want to clear all mood data?")
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Reset cancelled.")
			return nil
		}
	}

	ctx.PerformAutomaticBackup()

	if err := ctx.Mood.Reset(cmdContext(), c.scope(ctx)); err != nil {
		return err
	}

	fmt.Println("✓ Mood history cleared")
	return nil
}
