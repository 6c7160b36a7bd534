package cli

import (
	"context"
	"fmt"
	"log"

	"trivia-rooms/internal/app"
	"trivia-rooms/internal/config"
	"trivia-rooms/internal/infra/opentdb"
	pgsource "trivia-rooms/internal/infra/postgres"
	"github.com/spf13/cobra"
)

// NewSeedCmd fills the Postgres question bank from OpenTDB so the server can
// run without calling the provider at room-creation time.
func NewSeedCmd(configPath *string) *cobra.Command {
	var (
		category string
		amount   int
	)
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Fetch questions from OpenTDB into the question bank",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd.Context(), *configPath, category, amount)
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "seed a single category instead of all")
	cmd.Flags().IntVar(&amount, "amount", 50, "questions to fetch per category (provider caps at 50)")
	return cmd
}

func runSeed(ctx context.Context, configPath, category string, amount int) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if cfg.Postgres.URL == "" {
		return fmt.Errorf("postgres url not configured")
	}
	if err := runMigrationsWithConfig(ctx, cfg); err != nil {
		return err
	}

	db := openBunDB(cfg.Postgres.URL)
	defer db.Close()

	triviaTimeout := config.Duration(cfg.Trivia.Timeout, opentdb.DefaultTimeout)
	client := opentdb.NewClient(cfg.Trivia.BaseURL, triviaTimeout)

	categories := app.Categories
	if category != "" {
		categories = []string{app.NormalizeCategory(category)}
	}

	for _, cat := range categories {
		questions, _ := client.Fetch(ctx, cat, amount)
		if len(questions) == 0 {
			log.Printf("no questions fetched for %q, skipping", cat)
			continue
		}
		n, err := pgsource.SeedQuestions(ctx, db, cat, questions)
		if err != nil {
			return err
		}
		log.Printf("seeded %d %s questions", n, cat)
	}
	return nil
}
