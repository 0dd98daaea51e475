package shell

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"smartspend/internal/core"
)

// cmdAdd records an expense. With no flags or arguments it prompts for
// each field; a rejected field is asked again while the others are kept.
func (s *Shell) cmdAdd(ctx context.Context, args []string) error {
	var amount, category, description string
	fs := s.flagSet("add", "Usage: add [-amount N -category C -description D] | [N C D...]")
	fs.StringVar(&amount, "amount", "", "expense `amount`, e.g. 12.50")
	fs.StringVar(&category, "category", "", "expense `category`, e.g. food")
	fs.StringVar(&description, "description", "", "free text `description`")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	if rest := fs.Args(); len(rest) > 0 && amount == "" && category == "" && description == "" {
		amount = rest[0]
		if len(rest) > 1 {
			category = rest[1]
		}
		if len(rest) > 2 {
			description = strings.Join(rest[2:], " ")
		}
	}

	interactive := amount == "" && category == "" && description == ""
	if !interactive {
		return s.add(ctx, amount, category, description)
	}

	cur := s.svc.Formatter().Currency
	for {
		var ok bool
		if amount == "" {
			if amount, ok = s.prompt(fmt.Sprintf("Amount (%s): ", cur)); !ok {
				return nil
			}
		}
		if category == "" {
			if category, ok = s.prompt("Category: "); !ok {
				return nil
			}
		}
		if description == "" {
			if description, ok = s.prompt("Description: "); !ok {
				return nil
			}
		}

		err := s.add(ctx, amount, category, description)
		field, retry := retryField(err)
		if !retry {
			return err
		}
		s.report(err)
		switch field {
		case "amount":
			amount = ""
		case "category":
			category = ""
		case "description":
			description = ""
		}
	}
}

func (s *Shell) add(ctx context.Context, amount, category, description string) error {
	if similar, ok := s.svc.SimilarCategory(ctx, category); ok {
		s.warn.Fprintf(s.out, "Note: %q is a new category; did you mean %q?\n",
			core.NormalizeCategory(category), similar)
	}
	rec, err := s.svc.AddExpense(ctx, amount, category, description)
	if err != nil {
		return err
	}
	s.okay.Fprintf(s.out, "Added %s to %s\n", s.svc.Formatter().Amount(rec.Amount), core.DisplayCategory(rec.Category))
	return nil
}

// retryField reports which field to ask again for when err is a
// validation error raised during an interactive add.
func retryField(err error) (string, bool) {
	var ve *core.ValidationError
	if !errors.As(err, &ve) {
		return "", false
	}
	return ve.Field, true
}

func (s *Shell) cmdDaily(ctx context.Context, args []string) error {
	var date string
	fs := s.flagSet("daily", "Usage: daily [-date YYYY-MM-DD]")
	fs.StringVar(&date, "date", "", "report this `day` instead of today")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	var (
		text string
		err  error
	)
	if date == "" {
		text, err = s.svc.DailySummary(ctx)
	} else {
		day, perr := time.ParseInLocation(core.DayLayout, date, time.Local)
		if perr != nil {
			return fmt.Errorf("invalid date %q: expected YYYY-MM-DD", date)
		}
		text, err = s.svc.SummaryForDay(ctx, day)
	}
	if err != nil {
		return err
	}
	s.printReport(text)
	return nil
}

func (s *Shell) cmdMonthly(ctx context.Context, args []string) error {
	var month string
	fs := s.flagSet("monthly", "Usage: monthly [-month YYYY-MM]")
	fs.StringVar(&month, "month", "", "report this `month` instead of the current one")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	var (
		text string
		err  error
	)
	if month == "" {
		text, err = s.svc.MonthlySummary(ctx)
	} else {
		m, perr := time.ParseInLocation(core.MonthLayout, month, time.Local)
		if perr != nil {
			return fmt.Errorf("invalid month %q: expected YYYY-MM", month)
		}
		text, err = s.svc.SummaryForMonth(ctx, m.Year(), m.Month())
	}
	if err != nil {
		return err
	}
	s.printReport(text)
	return nil
}

func (s *Shell) cmdRecurring(ctx context.Context, args []string) error {
	fs := s.flagSet("recurring", "Usage: recurring")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	text, err := s.svc.Recurring(ctx)
	if err != nil {
		return err
	}
	s.printReport(text)
	return nil
}

func (s *Shell) cmdExport(ctx context.Context, args []string) error {
	var path string
	fs := s.flagSet("export", "Usage: export [-o path]")
	fs.StringVar(&path, "o", "", "destination `path` (default from EXPORT_PATH)")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	written, err := s.svc.Export(ctx, path)
	if err != nil {
		return err
	}
	s.okay.Fprintf(s.out, "Expenses exported to %s\n", written)
	return nil
}
