package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"resetclub/backend/quiz"
)

const (
	msgPassed = "Bravo ! Vous avez réussi ce quiz."
	msgFailed = "Continuez vos efforts, vous y êtes presque. Révisez le module et réessayez."
)

// play renders the session to out and drives it from lines read on in.
// It returns when the learner declines a restart or the input runs out.
func play(in io.Reader, out io.Writer, s *quiz.Session) error {
	lines := bufio.NewScanner(in)
	read := func() (string, bool) {
		if !lines.Scan() {
			return "", false
		}
		return strings.TrimSpace(lines.Text()), true
	}

	fmt.Fprintf(out, "== %s ==\n", s.Quiz().Title)
	for {
		snap := s.Snapshot()

		if snap.Completed {
			renderResult(out, snap)
			fmt.Fprint(out, "Recommencer ? (o/n) ")
			answer, ok := read()
			if !ok || !isYes(answer) {
				return lines.Err()
			}
			if err := s.Restart(); err != nil {
				return err
			}
			continue
		}

		renderQuestion(out, snap)
		answer, ok := read()
		if !ok {
			return lines.Err()
		}
		n, err := strconv.Atoi(answer)
		if err != nil || n < 1 || n > len(snap.Question.Options) {
			fmt.Fprintf(out, "Choix invalide, entrez un nombre entre 1 et %d.\n", len(snap.Question.Options))
			continue
		}
		if err := s.Select(snap.Question.Options[n-1].ID); err != nil {
			return err
		}

		renderFeedback(out, s.Snapshot())
		fmt.Fprint(out, "Entrée pour continuer... ")
		if _, ok := read(); !ok {
			return lines.Err()
		}
		if err := s.Advance(); err != nil {
			return err
		}
	}
}

func renderQuestion(out io.Writer, snap quiz.Snapshot) {
	q := snap.Question
	fmt.Fprintf(out, "\nQuestion %d/%d (%d pt)\n%s\n", snap.CurrentQuestionIndex+1, snap.QuestionCount, q.Points, q.Text)
	for i, o := range q.Options {
		fmt.Fprintf(out, "  %d. %s\n", i+1, o.Text)
	}
	fmt.Fprint(out, "> ")
}

func renderFeedback(out io.Writer, snap quiz.Snapshot) {
	fb := snap.Feedback
	if fb == nil {
		return
	}
	if fb.Correct {
		fmt.Fprintln(out, "Bonne réponse !")
	} else {
		for _, o := range snap.Question.Options {
			if o.ID == fb.CorrectOptionID {
				fmt.Fprintf(out, "Mauvaise réponse. La bonne réponse était : %s\n", o.Text)
			}
		}
	}
	if fb.Explanation != "" {
		fmt.Fprintln(out, fb.Explanation)
	}
}

func renderResult(out io.Writer, snap quiz.Snapshot) {
	sc := snap.Score
	fmt.Fprintf(out, "\nRésultat : %d/%d bonnes réponses (%d%%), %d/%d points\n",
		sc.Correct, sc.Total, sc.Percentage, sc.Points, sc.MaxPoints)
	if snap.Passed != nil && *snap.Passed {
		fmt.Fprintln(out, msgPassed)
	} else {
		fmt.Fprintf(out, "%s (score requis : %d%%)\n", msgFailed, snap.PassingScore)
	}
}

func isYes(s string) bool {
	switch strings.ToLower(s) {
	case "o", "oui", "y", "yes":
		return true
	}
	return false
}
