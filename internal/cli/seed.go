package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/senceapptr/SenceApp-sub004/internal/catalog"
	"github.com/senceapptr/SenceApp-sub004/internal/config"
	"github.com/senceapptr/SenceApp-sub004/internal/domain"
	"github.com/senceapptr/SenceApp-sub004/internal/infra/memory"
	"github.com/senceapptr/SenceApp-sub004/internal/infra/postgres"
	"github.com/senceapptr/SenceApp-sub004/internal/infra/sqlite"
	"github.com/senceapptr/SenceApp-sub004/internal/logger"
)

// NewSeedCmd copies a question catalog into the configured database.
func NewSeedCmd(configPath *string) *cobra.Command {
	var from string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load questions into Postgres or SQLite",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			return runSeed(cmd.Context(), cfg, from)
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "YAML/JSON question file (defaults to the built-in catalog)")
	return cmd
}

func runSeed(ctx context.Context, cfg config.Config, from string) error {
	questions, err := seedQuestions(ctx, from)
	if err != nil {
		return err
	}
	log := logger.FromContext(ctx).WithField("questions", len(questions))

	switch {
	case cfg.Postgres.URL != "":
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
		db := openBun(cfg.Postgres.URL)
		defer db.Close()
		n, err := postgres.SeedCatalog(ctx, db, questions)
		if err != nil {
			return err
		}
		log.WithField("rows", n).Info("postgres catalog seeded")
	case cfg.SQLite.Path != "":
		db, err := sqlite.Open(ctx, cfg.SQLite.Path)
		if err != nil {
			return err
		}
		defer db.Close()
		if err := sqlite.Insert(ctx, db, questions); err != nil {
			return err
		}
		log.WithField("path", cfg.SQLite.Path).Info("sqlite catalog seeded")
	default:
		return fmt.Errorf("neither postgres.url nor sqlite.path configured")
	}
	return nil
}

func seedQuestions(ctx context.Context, from string) ([]domain.Question, error) {
	if from == "" {
		return catalog.Embedded()
	}
	return memory.NewFileCatalogLoader(from).LoadCatalog(ctx)
}
