// Package shell is the text front end of the expense tracker. It collects
// input, calls the expense service and prints what it returns. Every error
// is turned into a message; none of them ends an interactive session.
package shell

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"

	"smartspend/internal/core"
	"smartspend/internal/export"
	"smartspend/internal/report"
)

// Service is the part of services.ExpenseService the shell uses.
type Service interface {
	AddExpense(ctx context.Context, amount, category, description string) (core.ExpenseRecord, error)
	DailySummary(ctx context.Context) (string, error)
	SummaryForDay(ctx context.Context, day time.Time) (string, error)
	MonthlySummary(ctx context.Context) (string, error)
	SummaryForMonth(ctx context.Context, year int, month time.Month) (string, error)
	Recurring(ctx context.Context) (string, error)
	Export(ctx context.Context, path string) (string, error)
	SimilarCategory(ctx context.Context, category string) (string, bool)
	Formatter() report.Formatter
}

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

// maxLineLength bounds a single input line.
const maxLineLength = 1 << 20

var errQuit = errors.New("quit")

// Shell holds everything a session needs; nothing is global.
type Shell struct {
	svc Service
	in  *bufio.Scanner
	out io.Writer
	err io.Writer

	warn  *color.Color
	fail  *color.Color
	okay  *color.Color
	title *color.Color
}

// New returns a shell reading commands from in and writing reports to out
// and problems to errOut.
func New(svc Service, in io.Reader, out, errOut io.Writer) *Shell {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLength)
	return &Shell{
		svc:   svc,
		in:    scanner,
		out:   out,
		err:   errOut,
		warn:  color.New(color.FgYellow),
		fail:  color.New(color.FgRed, color.Bold),
		okay:  color.New(color.FgGreen),
		title: color.New(color.Bold),
	}
}

// Run executes a single command given on the command line, or starts the
// interactive session when args is empty. It returns the process exit code.
func (s *Shell) Run(ctx context.Context, args []string) int {
	if len(args) == 0 {
		s.Interactive(ctx)
		return exitOK
	}

	err := s.dispatch(ctx, args[0], args[1:])
	switch {
	case err == nil, errors.Is(err, errQuit), errors.Is(err, flag.ErrHelp):
		return exitOK
	case errors.Is(err, errUsage):
		return exitUsage
	default:
		return exitError
	}
}

// Interactive reads commands until quit or end of input.
func (s *Shell) Interactive(ctx context.Context) {
	s.title.Fprintln(s.out, "Smart Expense Tracker")
	s.printMenu()
	for {
		fmt.Fprint(s.out, "> ")
		line, ok := s.readLine()
		if !ok {
			fmt.Fprintln(s.out)
			return
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if err := s.dispatch(ctx, fields[0], fields[1:]); errors.Is(err, errQuit) {
			return
		}
		if ctx.Err() != nil {
			return
		}
	}
}

var errUsage = errors.New("usage")

// dispatch runs one command. Errors are reported here; the return value is
// only used for exit codes.
func (s *Shell) dispatch(ctx context.Context, name string, args []string) error {
	var err error
	switch strings.ToLower(name) {
	case "1", "add":
		err = s.cmdAdd(ctx, args)
	case "2", "daily":
		err = s.cmdDaily(ctx, args)
	case "3", "monthly":
		err = s.cmdMonthly(ctx, args)
	case "4", "recurring":
		err = s.cmdRecurring(ctx, args)
	case "5", "export":
		err = s.cmdExport(ctx, args)
	case "h", "help", "?":
		s.printMenu()
		return nil
	case "q", "quit", "exit":
		return errQuit
	default:
		s.fail.Fprintf(s.err, "Unknown command %q. Type help for the list of commands.\n", name)
		return errUsage
	}
	if err != nil && !errors.Is(err, errUsage) && !errors.Is(err, flag.ErrHelp) {
		s.report(err)
	}
	return err
}

func (s *Shell) printMenu() {
	fmt.Fprint(s.out, `Commands:
  1 add        record an expense
  2 daily      today's summary        (-date YYYY-MM-DD)
  3 monthly    this month's summary   (-month YYYY-MM)
  4 recurring  descriptions recorded more than once
  5 export     write every expense to CSV (-o path)
  help, quit
`)
}

// report converts an error into the message shown to the user.
func (s *Shell) report(err error) {
	var (
		ve *core.ValidationError
		ee *export.ExportError
		se *core.StoreError
	)
	switch {
	case errors.As(err, &ve):
		s.fail.Fprintf(s.err, "Input Error: %s\n", ve.Error())
	case errors.Is(err, export.ErrNothingToExport):
		s.warn.Fprintln(s.out, "No expenses to export.")
	case errors.As(err, &ee):
		s.fail.Fprintf(s.err, "Export Error: %v\n", ee.Err)
	case errors.As(err, &se):
		s.fail.Fprintf(s.err, "Storage Error: %v\n", se.Err)
	default:
		s.fail.Fprintf(s.err, "Error: %v\n", err)
	}
}

// readLine returns the next trimmed line. It reports false at end of
// input and after a read error, which is printed.
func (s *Shell) readLine() (string, bool) {
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			s.fail.Fprintf(s.err, "Error: reading input: %v\n", err)
		}
		return "", false
	}
	return strings.TrimSpace(s.in.Text()), true
}

func (s *Shell) prompt(label string) (string, bool) {
	fmt.Fprint(s.out, label)
	return s.readLine()
}

// printReport writes a report and highlights the high spending line.
func (s *Shell) printReport(text string) {
	for _, line := range strings.SplitAfter(text, "\n") {
		if strings.HasPrefix(line, "High spending") {
			s.warn.Fprint(s.out, line)
			continue
		}
		fmt.Fprint(s.out, line)
	}
}

func (s *Shell) flagSet(name, usage string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(s.err)
	fs.Usage = func() {
		fmt.Fprintln(s.err, usage)
		fs.PrintDefaults()
	}
	return fs
}

func parseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return errUsage
	}
	return nil
}
