package moods

import (
	"fmt"

	"github.com/julianstephens/moodlog/internal/cli"
	"github.com/julianstephens/moodlog/internal/models"
	"github.com/julianstephens/moodlog/internal/mood"
	"github.com/julianstephens/moodlog/internal/utils"
)

type RecordCmd struct {
	Mood string `arg:"" help:"Mood to record (name, emoji, or a close match such as 'hap')."`
	At   string `help:"Time of the entry as HH:MM or an RFC3339 timestamp. Defaults to now."`
	Date string `help:"Date of the entry (YYYY-MM-DD) when --at is HH:MM. Defaults to today."`
}

func (c *RecordCmd) Run(ctx *cli.Context) error {
	m, err := models.ResolveMood(c.Mood)
	if err != nil {
		return err
	}

	selected, err := utils.ResolveSelectedTime(ctx.Mood.Now(), c.Date, c.At, ctx.Mood.Location())
	if err != nil {
		return err
	}

	entry, err := ctx.Mood.Record(cmdContext(), selected, m)
	if err != nil {
		return err
	}

	fmt.Printf("✓ %s %s\n", entry.Emoji, mood.Confirmation(entry))
	return nil
}
