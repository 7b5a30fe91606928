package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"gamified-learning-service/internal/catalog"
	"gamified-learning-service/internal/config"
	"github.com/spf13/cobra"
)

// NewSeedCmd loads the built-in subject catalogue into Postgres.
func NewSeedCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Seed the subject catalogue into Postgres",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			return seedCatalog(cmd.Context(), cfg)
		},
	}
}

func seedCatalog(ctx context.Context, cfg config.Config) error {
	if cfg.Postgres.URL == "" {
		return fmt.Errorf("postgres url not configured")
	}
	if err := runMigrationsWithConfig(ctx, cfg); err != nil {
		return err
	}

	db := openBunDB(cfg.Postgres.URL)
	defer db.Close()

	for position, subject := range catalog.BuiltinSubjects() {
		data, err := json.Marshal(subject)
		if err != nil {
			return fmt.Errorf("marshal subject %s: %w", subject.ID, err)
		}
		_, err = db.ExecContext(ctx,
			`INSERT INTO subjects (id, position, data) VALUES (?, ?, ?::jsonb)
			 ON CONFLICT (id) DO UPDATE SET position=EXCLUDED.position, data=EXCLUDED.data`,
			subject.ID, position, string(data))
		if err != nil {
			return fmt.Errorf("seed subject %s: %w", subject.ID, err)
		}
		log.Printf("seeded subject %s (%d lessons)", subject.ID, len(subject.Lessons))
	}
	return nil
}
