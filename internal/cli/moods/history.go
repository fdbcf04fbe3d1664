package moods

import (
	"fmt"

	"github.com/julianstephens/moodlog/internal/cli"
	"github.com/julianstephens/moodlog/internal/constants"
)

type HistoryCmd struct {
	Date string `arg:"" optional:"" help:"Date to show (YYYY-MM-DD). Defaults to today."`
}

func (c *HistoryCmd) Run(ctx *cli.Context) error {
	date := c.Date
	if date == "" {
		date = today(ctx)
	}

	entries, err := ctx.Mood.Entries(cmdContext(), date)
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		fmt.Printf("No moods recorded on %s.\n", date)
		return nil
	}

	fmt.Printf("Moods on %s:\n", date)
	for _, e := range entries {
		fmt.Printf("  %02d:00  %-9s  %s %s\n", e.Hour, e.TimeCategory, e.Emoji, e.Label)
	}
	return nil
}

// today is the partition a mood recorded now would land in
func today(ctx *cli.Context) string {
	now := ctx.Mood.Now()
	if ctx.Config != nil && ctx.Config.DateBasis == constants.DateBasisLocal {
		return now.Format(constants.DateFormat)
	}
	return now.UTC().Format(constants.DateFormat)
}
