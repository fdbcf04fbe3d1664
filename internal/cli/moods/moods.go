package moods

import (
	"context"
	"fmt"

	"github.com/julianstephens/moodlog/internal/cli"
	"github.com/julianstephens/moodlog/internal/models"
)

func cmdContext() context.Context {
	return context.Background()
}

// ListCmd prints the mood catalog
type ListCmd struct{}

func (c *ListCmd) Run(ctx *cli.Context) error {
	fmt.Println("Available moods:")
	for _, m := range models.Catalog {
		fmt.Printf("  %s  %s\n", m.Emoji, m.Label)
	}
	return nil
}
