package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/rumiadrian30/techdivulga/internal/app"
	"github.com/rumiadrian30/techdivulga/internal/files"
	"github.com/rumiadrian30/techdivulga/internal/format"
)

// newDocsCmd creates the docs command group.
func newDocsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "docs",
		Short: "Work with the documents of the data directory",
	}
	cmd.AddCommand(newDocsListCmd(), newDocsExtractCmd(), newDocsLoadCmd(), newDocsSearchCmd())
	return cmd
}

func openDocs(ctx context.Context) (*app.App, error) {
	return openApp(ctx, app.Options{SkipDatabase: true})
}

func newDocsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List supported files",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openDocs(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			list, err := a.Files.List(cmd.Context())
			if err != nil {
				return err
			}
			if outputJSON {
				return writeJSON(cmd.OutOrStdout(), list)
			}

			ui := NewUI(false, false)
			if len(list) == 0 {
				ui.Warning("No documents in %s", a.Files.Dir())
				return nil
			}
			rows := make([][]string, 0, len(list))
			for _, f := range list {
				rows = append(rows, []string{f.Name, f.Type, FormatBytes(f.Size), format.Relative(f.LastModified, time.Now())})
			}
			ui.Table([]string{"NAME", "TYPE", "SIZE", "MODIFIED"}, rows)
			return nil
		},
	}
}

func newDocsExtractCmd() *cobra.Command {
	var maxChars int

	cmd := &cobra.Command{
		Use:   "extract <file.pdf>",
		Short: "Extract the text of a PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openDocs(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			ui := NewUI(outputJSON, false)
			stop := ui.Spinner("Extracting " + args[0])
			doc, err := a.Files.ProcessPDF(cmd.Context(), args[0])
			stop()
			if err != nil {
				return describeFileError(ui, err)
			}
			if outputJSON {
				return writeJSON(cmd.OutOrStdout(), doc)
			}

			ui.Section(doc.Filename)
			ui.KeyValue("pages", doc.NumPages)
			for k, v := range doc.Info {
				ui.KeyValue(k, v)
			}
			ui.Newline()
			text := doc.Content
			if maxChars > 0 {
				text = format.Truncate(text, maxChars)
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}

	cmd.Flags().IntVar(&maxChars, "max-chars", 0, "truncate the printed text (0 prints everything)")
	return cmd
}

func newDocsLoadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "load",
		Short: "Read every document and report its size",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := openDocs(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			list, err := a.Files.List(ctx)
			if err != nil {
				return err
			}

			ui := NewUI(outputJSON, false)
			bar := ui.Counter(len(list), "Loading")
			type loaded struct {
				Filename string `json:"filename"`
				Chars    int    `json:"chars"`
				Error    string `json:"error,omitempty"`
			}
			results := make([]loaded, 0, len(list))
			for _, f := range list {
				text, err := readDocument(ctx, a.Files, f)
				r := loaded{Filename: f.Name, Chars: len([]rune(text))}
				if err != nil {
					r.Error = err.Error()
				}
				results = append(results, r)
				_ = bar.Add(1)
			}
			_ = bar.Finish()

			if outputJSON {
				return writeJSON(cmd.OutOrStdout(), results)
			}
			rows := make([][]string, 0, len(results))
			failed := 0
			for _, r := range results {
				status := "ok"
				if r.Error != "" {
					status = r.Error
					failed++
				}
				rows = append(rows, []string{r.Filename, fmt.Sprint(r.Chars), status})
			}
			ui.Table([]string{"FILE", "CHARS", "STATUS"}, rows)
			if failed > 0 {
				ui.Warning("%d of %d documents failed", failed, len(results))
			} else {
				ui.Success("%d documents loaded", len(results))
			}
			return nil
		},
	}
}

func readDocument(ctx context.Context, store *files.Store, f files.FileInfo) (string, error) {
	if f.Type == "pdf" {
		doc, err := store.ProcessPDF(ctx, f.Name)
		if err != nil {
			return "", err
		}
		return doc.Content, nil
	}
	doc, err := store.ReadText(ctx, f.Name)
	if err != nil {
		return "", err
	}
	return doc.Content, nil
}

func newDocsSearchCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the documents by keyword",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openDocs(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			ui := NewUI(outputJSON, false)
			stop := ui.Spinner("Indexing documents")
			stats, err := a.Index.Rebuild(cmd.Context(), a.Files)
			stop()
			if err != nil {
				return err
			}

			hits := a.Index.Search(strings.Join(args, " "), limit)
			if outputJSON {
				return writeJSON(cmd.OutOrStdout(), map[string]any{"results": hits, "index": stats})
			}
			ui.Info("%d documents, %d chunks", stats.Documents, stats.Chunks)
			if len(hits) == 0 {
				ui.Warning("No matches")
				return nil
			}
			rows := make([][]string, 0, len(hits))
			for _, h := range hits {
				rows = append(rows, []string{h.Filename, fmt.Sprint(h.Chunk), fmt.Sprintf("%.3f", h.Score), format.Truncate(oneLine(h.Text), 60)})
			}
			ui.Table([]string{"FILE", "CHUNK", "SCORE", "TEXT"}, rows)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "maximum results")
	return cmd
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// describeFileError prints the not-found suggestions before failing.
func describeFileError(ui *UI, err error) error {
	var fe *files.Error
	if errors.As(err, &fe) && len(fe.Suggestions) > 0 {
		ui.Warning("¿Quisiste decir: %s?", strings.Join(fe.Suggestions, ", "))
	}
	return err
}
