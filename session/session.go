// Package session implements the interactive loop: read a reference string
// and a frame count, compare the policies, and offer to run again.
package session

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"strings"

	"github.com/sarchlab/pagesim/refstring"
	"github.com/sarchlab/pagesim/replacement"
	"github.com/sarchlab/pagesim/report"
	"github.com/sarchlab/pagesim/runner"
)

// A Session talks to a user through a reader and a writer.
type Session struct {
	in        *bufio.Scanner
	out       io.Writer
	runner    *runner.Runner
	presenter *report.Presenter
	limits    refstring.Limits
	rng       *rand.Rand
	logger    *slog.Logger
}

// New creates a session that reads answers from in and writes prompts and
// tables to out.
func New(r *runner.Runner, in io.Reader, out io.Writer) *Session {
	return &Session{
		in:        bufio.NewScanner(in),
		out:       out,
		runner:    r,
		presenter: report.NewPresenter(),
		limits:    refstring.DefaultLimits(),
		rng:       rand.New(rand.NewSource(1)),
		logger:    slog.Default(),
	}
}

// WithLimits sets the accepted input range.
func (s *Session) WithLimits(limits refstring.Limits) *Session {
	s.limits = limits
	return s
}

// WithRand sets the random source used to generate reference strings.
func (s *Session) WithRand(rng *rand.Rand) *Session {
	s.rng = rng
	return s
}

// WithLogger sets the logger.
func (s *Session) WithLogger(logger *slog.Logger) *Session {
	s.logger = logger
	return s
}

// Run loops until the user answers "no" to the run-again question or the
// input ends.
func (s *Session) Run() error {
	for {
		err := s.RunOnce()
		if errors.Is(err, io.EOF) {
			return nil
		}

		if err != nil {
			return err
		}

		s.printf("\n\nWould you like to run again?")

		answer, err := s.readWord()
		if errors.Is(err, io.EOF) {
			return nil
		}

		if err != nil {
			return err
		}

		if strings.ToLower(answer) == "no" {
			return nil
		}
	}
}

// RunOnce asks for one input, runs every policy, and presents the results.
func (s *Session) RunOnce() error {
	refs, err := s.askReferenceString()
	if err != nil {
		return err
	}

	frames, err := s.askFrames()
	if err != nil {
		return err
	}

	frames = refstring.EffectiveFrames(frames, len(refs))

	results, err := s.runner.RunAll(refs, frames)
	if err != nil {
		return err
	}

	s.logger.Debug("policies compared",
		"refs", refstring.Format(refs), "frames", frames)

	return s.presenter.Present(s.out, results)
}

func (s *Session) askReferenceString() ([]replacement.Page, error) {
	s.printf("Would you like to generate a random reference string (1) " +
		"or to enter a reference string (2)?\n")

	choice, err := s.askChoice()
	if err != nil {
		return nil, err
	}

	if choice == 1 {
		return s.askRandom()
	}

	return s.askManual()
}

func (s *Session) askChoice() (int, error) {
	for {
		word, err := s.readWord()
		if err != nil {
			return 0, err
		}

		n, err := refstring.ParseInt(word)
		switch {
		case err != nil:
			s.printf("This is not a valid input. " +
				"Please select either \"1\" or \"2\":\n")
		case n != 1 && n != 2:
			s.printf("The number you selected was not \"1\" or \"2\". " +
				"Please try again:\n")
		default:
			return n, nil
		}
	}
}

func (s *Session) askRandom() ([]replacement.Page, error) {
	s.printf("\nPlease enter the number of reference string elements "+
		"(between 1 and %d)\n", s.limits.MaxLength)

	n, err := s.askInRange(s.limits.MaxLength)
	if err != nil {
		return nil, err
	}

	refs, err := refstring.Generate(s.rng, n, s.limits)
	if err != nil {
		return nil, err
	}

	s.printf("\n%s \n\n", refstring.Format(refs))

	return refs, nil
}

func (s *Session) askManual() ([]replacement.Page, error) {
	for {
		s.printf("Enter numbers separated by spaces:\n\n")

		line, err := s.readLine()
		if err != nil {
			return nil, err
		}

		refs, err := refstring.Parse(line, s.limits)
		if err == nil {
			return refs, nil
		}

		errs := splitErrors(err)
		for _, e := range errs {
			s.printf("%s!\n", e)
		}

		s.printf("There were %d errors! Please try again!\n", len(errs))
	}
}

func (s *Session) askFrames() (int, error) {
	s.printf("\nPlease enter the number of the frames (between 1 and %d)\n",
		s.limits.MaxFrames)

	return s.askInRange(s.limits.MaxFrames)
}

func (s *Session) askInRange(upper int) (int, error) {
	for {
		word, err := s.readWord()
		if err != nil {
			return 0, err
		}

		n, err := refstring.ParseInt(word)
		switch {
		case err != nil:
			s.printf("This is not a valid input. "+
				"Please select number between \"1\" and \"%d\":\n", upper)
		case n < 1 || n > upper:
			s.printf("The number you selected was not between "+
				"\"1\" and \"%d\". Please try again:\n", upper)
		default:
			return n, nil
		}
	}
}

func (s *Session) readLine() (string, error) {
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", err
		}

		return "", io.EOF
	}

	return s.in.Text(), nil
}

// readWord returns the first word of the next line.
func (s *Session) readWord() (string, error) {
	line, err := s.readLine()
	if err != nil {
		return "", err
	}

	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", nil
	}

	return fields[0], nil
}

func (s *Session) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}

func splitErrors(err error) []error {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		return joined.Unwrap()
	}

	return []error{err}
}
