// console.go
//
// Console drivers. They only read lines, print, and forward to the solver or
// game; all rules live in internal/.

package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/robalobadob/wordlebot/internal/config"
	"github.com/robalobadob/wordlebot/internal/game"
	"github.com/robalobadob/wordlebot/internal/knowledge"
	"github.com/robalobadob/wordlebot/internal/ranking"
	"github.com/robalobadob/wordlebot/internal/simulate"
	"github.com/robalobadob/wordlebot/internal/solver"
)

// runSolveConsole reads guess/pattern pairs until the word is solved, the
// candidates run out, input ends, or the user types "exit". "-r" resets.
func runSolveConsole(in io.Reader, out io.Writer, res *config.Resources) error {
	sess, err := solver.New(res.Corpus, res.Table, res.Weights, solver.WithStrategy(res.Strategy))
	if err != nil {
		return err
	}
	sc := bufio.NewScanner(in)
	prompt := func(msg string) (string, bool) {
		fmt.Fprint(out, msg)
		if !sc.Scan() {
			return "", false
		}
		return strings.ToLower(strings.TrimSpace(sc.Text())), true
	}

	if err := printSuggestions(out, sess, "Top 10 words by letter position frequency:"); err != nil {
		return err
	}
	for {
		word, ok := prompt("Enter your 5-letter guess (or 'exit'): ")
		if !ok || word == "exit" {
			fmt.Fprintln(out, "Exiting solver.")
			return sc.Err()
		}
		if word == "-r" {
			sess.Reset()
			fmt.Fprintln(out, "Solver has been reset.")
			fmt.Fprintln(out)
			if err := printSuggestions(out, sess, "Top 10 words by letter position frequency:"); err != nil {
				return err
			}
			continue
		}
		if err := knowledge.ValidateWord(word); err != nil {
			fmt.Fprintf(out, "Please enter a 5-letter word.\n\n")
			continue
		}
		if !res.Corpus.Contains(word) {
			fmt.Fprintf(out, "'%s' is not in the wordlist.\n\n", word)
			continue
		}

		pattern, ok := prompt("Enter pattern (w = wrong, m = misplaced, c = correct): ")
		if !ok {
			return sc.Err()
		}
		v, err := knowledge.ParseVerdict(pattern)
		if err != nil {
			fmt.Fprintf(out, "Invalid pattern. Use only w, m, c.\n\n")
			continue
		}

		status, err := sess.Guess(word, v)
		if err != nil {
			fmt.Fprintf(out, "Rejected: %v\n\n", err)
			continue
		}
		fmt.Fprintf(out, "\n%s\n\n", sess.Known().Summary())

		switch status {
		case solver.Solved:
			w, _ := sess.SolvedWord()
			fmt.Fprintf(out, "Congratulations! You've solved the puzzle! The word is '%s'.\n", w)
			return nil
		case solver.Exhausted:
			fmt.Fprintf(out, "No word in the list matches that feedback (%s). Type -r to start over.\n\n", sess.Reason())
			continue
		}
		if err := printSuggestions(out, sess, "Top suggested words:"); err != nil {
			return err
		}
	}
}

func printSuggestions(out io.Writer, sess *solver.Session, title string) error {
	top, err := sess.Suggest(10)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, title)
	printScores(out, top)
	if sess.Attempts() > 0 {
		fmt.Fprintf(out, "Total Words Left: %d\n", sess.Remaining())
	}
	fmt.Fprintln(out)
	return nil
}

func printScores(out io.Writer, scored []ranking.Scored) {
	for _, s := range scored {
		fmt.Fprintf(out, "%-10s %.5f\n", s.Word, s.Score)
	}
}

// runPlayConsole lets a person guess the hidden word of g.
func runPlayConsole(in io.Reader, out io.Writer, g *game.Game) error {
	sc := bufio.NewScanner(in)
	fmt.Fprintf(out, "Guess the 5-letter word in %d tries. Feedback: c = correct, m = misplaced, w = wrong.\n", g.Rows)
	for g.State() == game.StatePlaying {
		fmt.Fprintf(out, "Guess %d: ", len(g.Guesses)+1)
		if !sc.Scan() {
			return sc.Err()
		}
		v, state, err := g.ApplyGuess(sc.Text())
		if err != nil {
			switch {
			case errors.Is(err, game.ErrNotAllowed):
				fmt.Fprintln(out, "Not in the word list.")
			default:
				fmt.Fprintf(out, "Invalid guess: %v\n", err)
			}
			continue
		}
		fmt.Fprintf(out, "          %s\n", v)
		switch state {
		case game.StateWon:
			fmt.Fprintf(out, "Solved in %d!\n", len(g.Guesses))
		case game.StateLost:
			fmt.Fprintf(out, "Out of guesses. The word was '%s'.\n", g.Answer)
		}
	}
	return nil
}

// printReport renders a simulation summary with a bar per histogram bucket.
func printReport(out io.Writer, r simulate.Report) {
	fmt.Fprintln(out)
	fmt.Fprintln(out, " === Simulation Summary ===")
	fmt.Fprintf(out, "Total Games Simulated: %d\n", r.Runs)
	fmt.Fprintf(out, "Wins: %d (Win Rate: %.2f%%)\n", r.Wins, r.WinRate*100)
	fmt.Fprintf(out, "Average Guesses (for wins): %.3f\n", r.MeanGuesses)
	fmt.Fprintf(out, "Strategy: %s   Elapsed: %s\n", r.Strategy, r.Elapsed.Round(time.Millisecond))
	if r.ID != "" {
		fmt.Fprintf(out, "Stored as: %s\n", r.ID)
	}
	fmt.Fprintln(out, "============================")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Guess Distribution (Guesses -> Count):")
	bars := r.Bars()
	for i, count := range r.Histogram {
		label := fmt.Sprintf("%d: ", i+1)
		if i == len(r.Histogram)-1 {
			label = "Loss:"
		}
		fmt.Fprintf(out, "%-5s%-8d%s\n", label, count, strings.Repeat("█", bars[i]))
	}
	fmt.Fprintln(out, "============================")
}
