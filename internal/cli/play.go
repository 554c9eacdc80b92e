package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"brainblitz-service/internal/app"
	"brainblitz-service/internal/config"
	"brainblitz-service/internal/domain"
	"github.com/spf13/cobra"
)

// NewPlayCmd builds the CLI subcommand that runs a full quiz session in the
// terminal, countdown included.
func NewPlayCmd(configPath *string) *cobra.Command {
	var (
		name       string
		category   string
		difficulty string
		amount     int
		source     string
		listCats   bool
	)
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a quiz in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			service, categories, cleanup, err := buildService(cmd.Context(), cfg, source)
			if err != nil {
				return err
			}
			defer cleanup()

			if listCats {
				return printCategories(cmd.Context(), categories, cmd.OutOrStdout())
			}

			settings := domain.Settings{Category: category, Difficulty: difficulty, Amount: amount}
			return runPlay(cmd.Context(), service, settings, name, os.Stdin, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "display name for the leaderboard")
	cmd.Flags().StringVar(&category, "category", domain.CategoryAny, "category id or 'any'")
	cmd.Flags().StringVar(&difficulty, "difficulty", domain.DifficultyAny, "easy, medium, hard or any")
	cmd.Flags().IntVar(&amount, "amount", 10, "number of questions (5-20)")
	cmd.Flags().StringVar(&source, "source", "opentdb", "question source: opentdb or local")
	cmd.Flags().BoolVar(&listCats, "list-categories", false, "print the category catalog and exit")
	return cmd
}

func printCategories(ctx context.Context, source app.CategorySource, out io.Writer) error {
	categories, err := source.ListCategories(ctx)
	if err != nil {
		return err
	}
	for _, cat := range categories {
		fmt.Fprintf(out, "%3d  %s\n", cat.ID, domain.FormatCategory(cat.Name))
	}
	return nil
}

func runPlay(ctx context.Context, service *app.QuizService, settings domain.Settings, name string, in io.Reader, out io.Writer) error {
	session, err := service.NewSession(settings)
	if err != nil {
		return err
	}
	if err := session.Load(ctx); err != nil {
		return err
	}

	lines := make(chan string)
	go func() {
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		close(lines)
	}()

	for {
		snap := session.Snapshot()
		printQuestion(out, snap)

		if err := answerPhase(ctx, session, lines, out); err != nil {
			return err
		}
		printReveal(out, session.Snapshot())

		fmt.Fprintln(out, "Press Enter to continue...")
		if _, ok := <-lines; !ok {
			return nil
		}
		finished, err := session.Advance()
		if err != nil {
			return err
		}
		if finished {
			break
		}
	}

	result, err := session.Result()
	if err != nil {
		return err
	}
	printResult(out, result)

	if name == "" {
		fmt.Fprint(out, "Your name for the leaderboard: ")
		entered, ok := <-lines
		if !ok || strings.TrimSpace(entered) == "" {
			return nil
		}
		name = strings.TrimSpace(entered)
	}
	board, err := service.SubmitResult(ctx, name, result, settings)
	if err != nil {
		return err
	}
	printLeaderboard(out, board)
	return nil
}

// answerPhase waits for either a valid option letter or the countdown
// hitting zero, whichever comes first.
func answerPhase(ctx context.Context, session *app.Session, lines <-chan string, out io.Writer) error {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case line, ok := <-lines:
			if !ok {
				return errors.New("input closed")
			}
			snap := session.Snapshot()
			option, valid := optionForLetter(snap.Question.Options, line)
			if !valid {
				fmt.Fprintf(out, "Enter a letter A-%c.\n", 'A'+len(snap.Question.Options)-1)
				continue
			}
			if _, err := session.SelectAnswer(option); err != nil {
				return err
			}
			return nil

		case <-ticker.C:
			if session.Tick() {
				fmt.Fprintln(out, "\nTime's up!")
				return nil
			}
		}
	}
}

func optionForLetter(options []string, line string) (string, bool) {
	line = strings.ToUpper(strings.TrimSpace(line))
	if len(line) != 1 {
		return "", false
	}
	index := int(line[0] - 'A')
	if index < 0 || index >= len(options) {
		return "", false
	}
	return options[index], true
}

func printQuestion(out io.Writer, snap app.Snapshot) {
	q := snap.Question
	fmt.Fprintf(out, "\n[%d/%d] %s (%s) | score %d | %ds on the clock\n\n",
		snap.Index+1, snap.Total, domain.FormatCategory(q.Category), domain.FormatDifficulty(q.Difficulty), snap.Score, snap.Remaining)
	fmt.Fprintf(out, "%s\n\n", q.Prompt)
	for i, option := range q.Options {
		fmt.Fprintf(out, "  %c. %s\n", 'A'+i, option)
	}
	fmt.Fprintln(out)
}

func printReveal(out io.Writer, snap app.Snapshot) {
	if snap.Selected == snap.Question.CorrectAnswer && snap.Selected != "" {
		fmt.Fprintln(out, "Correct!")
		return
	}
	fmt.Fprintf(out, "The correct answer was: %s\n", snap.Question.CorrectAnswer)
}

func printResult(out io.Writer, result domain.Result) {
	fmt.Fprintf(out, "\nFinished! %d/%d correct (%d%%) in %ds\n",
		result.CorrectAnswers, result.TotalQuestions, result.Percentage, result.ElapsedSeconds)
}

func printLeaderboard(out io.Writer, board []domain.LeaderboardEntry) {
	fmt.Fprintln(out, "\nLeaderboard:")
	for i, entry := range board {
		fmt.Fprintf(out, "%2d. %-20s %3d%%  %s\n", i+1, entry.DisplayName, entry.Score, entry.CompletedAt.Format("2006-01-02"))
	}
}
