package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/sahilm/fuzzy"
	"github.com/spf13/cobra"

	"github.com/rumiadrian30/techdivulga/internal/app"
	"github.com/rumiadrian30/techdivulga/internal/chat"
	"github.com/rumiadrian30/techdivulga/internal/classifier"
	"github.com/rumiadrian30/techdivulga/internal/knowledge"
	"github.com/rumiadrian30/techdivulga/internal/response"
)

// newAskCmd creates the ask subcommand.
func newAskCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask the Messi assistant a single question",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := response.ParseFormat(format)
			if err != nil {
				return err
			}
			a, err := openApp(cmd.Context(), app.Options{SkipDatabase: true})
			if err != nil {
				return err
			}
			defer a.Close()

			turn := a.Chat.Answer(strings.Join(args, " "), f)
			if outputJSON {
				return writeJSON(cmd.OutOrStdout(), turn)
			}

			ui := NewUI(false, false)
			printTurn(ui, turn)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "markdown", "answer format: markdown, html, voice or text")
	return cmd
}

func printTurn(ui *UI, turn *chat.Turn) {
	if turn.Format == response.FormatMarkdown {
		ui.Markdown(turn.Text)
	} else {
		fmt.Fprintln(ui.out, turn.Text)
	}
	if verbose {
		ui.KeyValue("intent", turn.Classification.Intent)
		ui.KeyValue("confidence", fmt.Sprintf("%.2f", turn.Classification.Confidence))
	}
}

// newChatCmd creates the interactive chat subcommand.
func newChatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Chat with the Messi assistant",
		Long: `Start an interactive conversation. Besides questions, the prompt accepts:

  /feedback + | -   rate the last answer
  /clear            start over
  /help             show this help
  /exit             leave`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context(), app.Options{SkipDatabase: true})
			if err != nil {
				return err
			}
			defer a.Close()

			return runChat(cmd.Context(), a.Chat, cmd.InOrStdin(), NewUI(outputJSON, false))
		},
	}
}

const chatHelp = "Comandos: /feedback + | -, /clear, /help, /exit"

// runChat reads questions line by line until /exit or end of input. The
// session is deleted on the way out.
func runChat(ctx context.Context, svc *chat.Service, in io.Reader, ui *UI) error {
	sess, err := svc.CreateSession(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := svc.Delete(context.WithoutCancel(ctx), sess.ID); err != nil {
			logger.Debug().Err(err).Msg("Failed to delete chat session")
		}
	}()

	ui.Markdown(sess.Messages[0].Text)
	ui.Info(chatHelp)

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(ui.out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(ui.out)
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		command, arg := parseChatCommand(line)
		switch command {
		case "exit", "quit", "salir":
			ui.Info("¡Hasta pronto!")
			return nil
		case "help":
			ui.Info(chatHelp)
		case "clear":
			if _, err := svc.Clear(ctx, sess.ID); err != nil {
				return err
			}
			ui.Success(chat.ClearedMessage)
		case "feedback":
			fb, err := chat.ParseFeedback(arg)
			if err != nil {
				ui.Warning("Usa /feedback + o /feedback -")
				continue
			}
			msg, err := svc.Feedback(ctx, sess.ID, fb)
			if err != nil {
				ui.Warning("%v", err)
				continue
			}
			ui.Success("%s", msg.Text)
		case "":
			turn, err := svc.Ask(ctx, sess.ID, line, response.FormatMarkdown)
			if err != nil {
				return err
			}
			printTurn(ui, turn)
		default:
			ui.Warning("Comando desconocido /%s. %s", command, chatHelp)
		}
	}
}

// parseChatCommand splits "/name arg" lines. Plain questions return an empty
// command.
func parseChatCommand(line string) (command, arg string) {
	if !strings.HasPrefix(line, "/") {
		return "", ""
	}
	name, rest, _ := strings.Cut(strings.TrimPrefix(line, "/"), " ")
	return strings.ToLower(name), strings.TrimSpace(rest)
}

// newClassifyCmd creates the classify subcommand.
func newClassifyCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "classify <question>",
		Short: "Show how a question is classified",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context(), app.Options{SkipDatabase: true})
			if err != nil {
				return err
			}
			defer a.Close()

			query := strings.Join(args, " ")
			res := a.Classifier.Classify(query)
			scores := res.Scores
			if all {
				scores = a.Classifier.Score(query)
			}
			if outputJSON {
				return writeJSON(cmd.OutOrStdout(), map[string]any{"result": res, "scores": scores})
			}

			ui := NewUI(false, false)
			ui.Section("Clasificación")
			ui.KeyValue("intent", res.Intent)
			ui.KeyValue("confidence", fmt.Sprintf("%.3f", res.Confidence))
			ui.KeyValue("specific", res.Specific)
			ui.KeyValue("tokens", strings.Join(res.Tokens, " "))
			ui.KeyValue("sentiment", res.Sentiment)
			for cat, names := range res.Entities {
				ui.KeyValue("entities."+string(cat), strings.Join(names, ", "))
			}
			if len(scores) > 0 {
				ui.Newline()
				ui.Table([]string{"INTENT", "SCORE", "THRESHOLD", "PATTERN", "KEYWORD", "EXAMPLE", "BONUS"}, scoreRows(scores))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "score every intent, skipping the short-circuit rules")
	return cmd
}

func scoreRows(scores []classifier.Score) [][]string {
	rows := make([][]string, 0, len(scores))
	for _, s := range scores {
		pattern := "no"
		if s.PatternHit {
			pattern = "yes"
		}
		rows = append(rows, []string{
			s.Intent,
			fmt.Sprintf("%.3f", s.Score),
			fmt.Sprintf("%.2f", s.Threshold),
			pattern,
			fmt.Sprintf("%.3f", s.Keyword),
			fmt.Sprintf("%.3f", s.Example),
			fmt.Sprintf("%.1f", s.Bonus),
		})
	}
	return rows
}

// newIntentsCmd creates the intents subcommand.
func newIntentsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "intents [filter]",
		Short: "List the intents the assistant recognises",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := knowledge.LoadCatalog()
			if err != nil {
				return err
			}
			filter := ""
			if len(args) == 1 {
				filter = args[0]
			}
			intents := filterIntents(catalog.Intents, filter)

			if outputJSON {
				out := make([]map[string]any, 0, len(intents))
				for _, in := range intents {
					out = append(out, map[string]any{
						"name":      in.Name,
						"threshold": in.Threshold,
						"keywords":  in.Keywords,
						"examples":  in.Examples,
					})
				}
				return writeJSON(cmd.OutOrStdout(), out)
			}

			ui := NewUI(false, false)
			rows := make([][]string, 0, len(intents))
			for _, in := range intents {
				example := ""
				if len(in.Examples) > 0 {
					example = in.Examples[0]
				}
				rows = append(rows, []string{in.Name, fmt.Sprintf("%.2f", in.Threshold), example})
			}
			ui.Table([]string{"INTENT", "THRESHOLD", "EXAMPLE"}, rows)
			return nil
		},
	}
}

// filterIntents keeps the intents whose name fuzzy-matches filter, best
// match first. An empty filter keeps catalog order.
func filterIntents(intents []knowledge.Intent, filter string) []knowledge.Intent {
	if filter == "" {
		return intents
	}
	names := make([]string, len(intents))
	for i, in := range intents {
		names[i] = in.Name
	}
	matches := fuzzy.Find(filter, names)
	out := make([]knowledge.Intent, 0, len(matches))
	for _, m := range matches {
		out = append(out, intents[m.Index])
	}
	return out
}
