package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/vbauerster/mpb/v8"

	"github.com/rumiadrian30/techdivulga/internal/app"
	"github.com/rumiadrian30/techdivulga/internal/content"
	"github.com/rumiadrian30/techdivulga/internal/storage"
)

// newContentCmd creates the content command group.
func newContentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "content",
		Short: "Seed and browse the content tables",
	}
	cmd.AddCommand(newContentSeedCmd(), newContentListCmd())
	return cmd
}

func newContentSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed <file.yaml>",
		Short: "Create the items of a YAML seed file",
		Long: `Seed reads a YAML document whose top-level keys are resource names
(articulos, tutoriales, herramientas, noticias) and creates every item.
Migrations are applied first.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			seed, err := content.LoadSeed(args[0])
			if err != nil {
				return err
			}
			a, err := openApp(cmd.Context(), app.Options{Migrate: true})
			if err != nil {
				return err
			}
			defer a.Close()

			ui := NewUI(outputJSON, false)
			bars := make(map[content.Resource]*mpb.Bar, len(seed))
			for _, r := range content.Resources {
				if n := len(seed[string(r)]); n > 0 {
					bars[r] = ui.ProgressBar(string(r), int64(n))
				}
			}

			start := time.Now()
			created, err := a.Content.Seed(cmd.Context(), seed, func(r content.Resource) {
				if bar := bars[r]; bar != nil {
					bar.Increment()
				}
			})
			for _, bar := range bars {
				if bar != nil && !bar.Completed() {
					bar.Abort(false)
				}
			}
			ui.Close()
			if err != nil {
				return err
			}

			if outputJSON {
				return writeJSON(cmd.OutOrStdout(), map[string]any{"created": created})
			}
			ui.Success("%d items created in %s", created, time.Since(start).Round(time.Millisecond))
			return nil
		},
	}
}

func newContentListCmd() *cobra.Command {
	var (
		opts      content.ListOptions
		published bool
	)

	cmd := &cobra.Command{
		Use:   "list <resource>",
		Short: "List the items of a content table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := content.ParseResource(args[0])
			if err != nil {
				return err
			}
			a, err := openApp(cmd.Context(), app.Options{Migrate: true})
			if err != nil {
				return err
			}
			defer a.Close()

			var page *content.Page
			if published {
				page, err = a.Content.Published(cmd.Context(), r, opts)
			} else {
				page, err = a.Content.List(cmd.Context(), string(r), opts)
			}
			if err != nil {
				return err
			}
			if outputJSON {
				return writeJSON(cmd.OutOrStdout(), page)
			}

			ui := NewUI(false, false)
			now := time.Now()
			rows := make([][]string, 0, len(page.Data))
			for _, it := range page.Data {
				c := it.Card(now)
				rows = append(rows, []string{c.Title, c.Relative, c.Rating, c.Level, strings.Join(c.Tags, ", ")})
			}
			ui.Table([]string{"TITLE", "DATE", "RATING", "LEVEL", "TAGS"}, rows)
			ui.Info("Page %d, %d of %d items", page.Page, len(page.Data), page.Total)
			return nil
		},
	}

	cmd.Flags().IntVar(&opts.Page, "page", 1, "page number")
	cmd.Flags().IntVar(&opts.Limit, "limit", 20, "items per page")
	cmd.Flags().StringVar(&opts.Search, "search", "", "case-insensitive text filter")
	cmd.Flags().StringVar(&opts.Sort, "sort", "", "sort field, prefix with - for descending")
	cmd.Flags().BoolVar(&published, "published", false, "only published items")
	return cmd
}

// newMigrateCmd creates the migrate subcommand.
func newMigrateCmd() *cobra.Command {
	var status bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		Long:  `Apply pending migrations to the configured SQLite or Postgres database. Use --status to only report.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			db, dialect, err := storage.Open(ctx, cfg.Database)
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			defer db.Close()

			migrator := storage.NewMigrator(db, dialect)
			ui := NewUI(outputJSON, false)

			if status {
				st, err := migrator.Status(ctx)
				if err != nil {
					return err
				}
				if outputJSON {
					return writeJSON(cmd.OutOrStdout(), st)
				}
				ui.KeyValue("database", dialect)
				ui.KeyValue("applied", strings.Join(st.Applied, ", "))
				ui.KeyValue("pending", strings.Join(st.Pending, ", "))
				return nil
			}

			applied, err := migrator.Up(ctx)
			if err != nil {
				return err
			}
			if outputJSON {
				return writeJSON(cmd.OutOrStdout(), map[string]any{"database": dialect, "applied": applied})
			}
			if len(applied) == 0 {
				ui.Info("Database is up to date")
				return nil
			}
			for _, v := range applied {
				ui.Success("Applied %s", v)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&status, "status", false, "show applied and pending migrations without applying")
	return cmd
}
