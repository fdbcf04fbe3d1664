package moods

import (
	"fmt"

	"github.com/julianstephens/moodlog/internal/chart"
	"github.com/julianstephens/moodlog/internal/cli"
	"github.com/julianstephens/moodlog/internal/models"
)

type StatsCmd struct {
	Width int `help:"Width of the bars in the breakdown." default:"30"`
}

func (c *StatsCmd) Run(ctx *cli.Context) error {
	stats := ctx.Mood.Stats(cmdContext())
	segments := chart.Build(stats, models.Catalog)

	fmt.Println(chart.Title)
	fmt.Println()
	fmt.Println(chart.Render(segments, c.Width))
	if total := stats.Total(); total > 0 {
		fmt.Printf("\n%d entries recorded\n", total)
	}
	return nil
}
