package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/AIProjectsAxis/AI-Receiptionist-User-sub002/internal/export"
	"github.com/AIProjectsAxis/AI-Receiptionist-User-sub002/internal/hours"
	"github.com/AIProjectsAxis/AI-Receiptionist-User-sub002/internal/model"
	"github.com/AIProjectsAxis/AI-Receiptionist-User-sub002/internal/onboarding"
)

var (
	editMode     string
	editUniform  []string
	editSet      []string
	editWeekend  string
	editSaturday string
	editSunday   string
	editSave     bool
	optionsStart string
	exportOut    string
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print a company's business hours",
	Args:  cobra.NoArgs,
	RunE:  runShow,
}

var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit a company's business hours with the onboarding form rules",
	Long: `Loads the stored hours and applies, in order: --mode, every --uniform,
every --set, --weekend, then --saturday and --sunday. Prints the validation
result and the payload that would be submitted; --save submits it when it
is valid.

Values are "closed" or a half-hour time from 07:00 to 22:00.

Example:
  hoursctl edit --company acme --mode per_day --set friday.end_time=15:00 --save`,
	Args: cobra.NoArgs,
	RunE: runEdit,
}

var optionsCmd = &cobra.Command{
	Use:   "options",
	Short: "List start time options, or end time options after --start",
	Args:  cobra.NoArgs,
	RunE:  runOptions,
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write a company's business hours to an .xlsx file",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

func init() {
	requireCompany(showCmd)
	requireCompany(editCmd)
	requireCompany(exportCmd)

	editCmd.Flags().StringVar(&editMode, "mode", "", "Edit mode: uniform or per_day")
	editCmd.Flags().StringArrayVar(&editUniform, "uniform", nil, "Set the shared weekday window (field=value)")
	editCmd.Flags().StringArrayVar(&editSet, "set", nil, "Set one day (day.field=value)")
	editCmd.Flags().StringVar(&editWeekend, "weekend", "", "Open (true) or close (false) Saturday and Sunday")
	editCmd.Flags().StringVar(&editSaturday, "saturday", "", "Open (true) or close (false) Saturday only")
	editCmd.Flags().StringVar(&editSunday, "sunday", "", "Open (true) or close (false) Sunday only")
	editCmd.Flags().BoolVar(&editSave, "save", false, "Submit the result when valid")

	optionsCmd.Flags().StringVar(&optionsStart, "start", "", "Start time to list end options for")

	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "business_hours.xlsx", "Output file")
}

func runShow(cmd *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
	defer cancel()

	session, err := a.service.Open(ctx, companyID)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Company:  %s\n", session.CompanyID)
	if session.Timezone != "" {
		fmt.Fprintf(out, "Timezone: %s\n", session.Timezone)
	}
	session.View(func(m *hours.Manager) {
		printManager(out, m)
	})
	return nil
}

func runEdit(cmd *cobra.Command, _ []string) error {
	edits, err := buildEdits()
	if err != nil {
		return err
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
	defer cancel()

	session, err := a.service.Open(ctx, companyID)
	if err != nil {
		return err
	}
	if err := session.Edit(edits); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	var msg string
	session.View(func(m *hours.Manager) {
		printManager(out, m)
		msg = m.Validate()
	})
	if msg != "" {
		fmt.Fprintf(out, "\nValidation: %s\n", msg)
	} else {
		fmt.Fprintln(out, "\nValidation: ok")
	}

	payload, err := json.MarshalIndent(map[string]model.WeeklyScheduleWire{"business_hours": session.Payload()}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}
	fmt.Fprintf(out, "\nPayload:\n%s\n", payload)

	if !editSave {
		return nil
	}
	if err := a.service.Save(ctx, companyID); err != nil {
		var vErr *onboarding.ValidationError
		if errors.As(err, &vErr) {
			return fmt.Errorf("not saved: %s", vErr.Message)
		}
		return err
	}
	fmt.Fprintln(out, "Saved.")
	return nil
}

// buildEdits parses the edit flags up front so a typo fails before any request.
func buildEdits() (func(m *hours.Manager) error, error) {
	var mode hours.Mode
	if editMode != "" {
		parsed, err := hours.ParseMode(editMode)
		if err != nil {
			return nil, err
		}
		mode = parsed
	}

	uniform := make([]fieldAssignment, 0, len(editUniform))
	for _, s := range editUniform {
		fa, err := parseUniformAssignment(s)
		if err != nil {
			return nil, err
		}
		uniform = append(uniform, fa)
	}

	perDay := make([]fieldAssignment, 0, len(editSet))
	for _, s := range editSet {
		fa, err := parseDayAssignment(s)
		if err != nil {
			return nil, err
		}
		perDay = append(perDay, fa)
	}

	weekend, err := parseToggle("weekend", editWeekend)
	if err != nil {
		return nil, err
	}
	saturday, err := parseToggle("saturday", editSaturday)
	if err != nil {
		return nil, err
	}
	sunday, err := parseToggle("sunday", editSunday)
	if err != nil {
		return nil, err
	}

	return func(m *hours.Manager) error {
		if mode != "" {
			m.SetMode(mode)
		}
		for _, fa := range uniform {
			if err := m.SetUniformWeekdayWindow(fa.Field, fa.Value); err != nil {
				return fmt.Errorf("--uniform %s=%s: %w", fa.Field, fa.Value, err)
			}
		}
		for _, fa := range perDay {
			m.SetDayWindow(fa.Day, fa.Field, fa.Value)
		}
		if weekend != nil {
			m.SetWeekendAggregate(*weekend)
		}
		if saturday != nil {
			if err := m.SetWeekendDay(model.Saturday, *saturday); err != nil {
				return err
			}
		}
		if sunday != nil {
			if err := m.SetWeekendDay(model.Sunday, *sunday); err != nil {
				return err
			}
		}
		return nil
	}, nil
}

func runOptions(cmd *cobra.Command, _ []string) error {
	var opts []hours.TimeOption
	if optionsStart == "" {
		opts = hours.StartTimeOptions()
	} else {
		start, err := parseSelectorValue(optionsStart)
		if err != nil {
			return err
		}
		opts = hours.EndTimeOptions(start)
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	for _, o := range opts {
		fmt.Fprintf(tw, "%s\t%s\n", o.Value, o.Label)
	}
	return tw.Flush()
}

func runExport(cmd *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
	defer cancel()

	session, err := a.service.Open(ctx, companyID)
	if err != nil {
		return err
	}
	var schedule model.WeeklySchedule
	session.View(func(m *hours.Manager) {
		schedule = m.Schedule()
	})

	wb := export.NewWorkbook()
	defer wb.Close()
	if err := wb.WriteSchedule(companyID, schedule); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	if err := wb.SaveToFile(exportOut); err != nil {
		return fmt.Errorf("save %s: %w", exportOut, err)
	}
	a.logger.Info().Str("company_id", companyID).Str("file", exportOut).Msg("business hours exported")
	return nil
}

func printManager(w io.Writer, m *hours.Manager) {
	schedule := m.Schedule()

	fmt.Fprintf(w, "Mode:     %s\n", m.Mode())
	if m.Mode() == hours.ModeUniform {
		common := m.CommonWeekdayTime()
		fmt.Fprintf(w, "Weekdays: %s\n", windowText(common, true))
	}
	fmt.Fprintf(w, "Weekends: %t\n\n", m.OpenOnWeekends())

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, d := range model.AllDays {
		win, open := schedule.Window(d)
		fmt.Fprintf(tw, "%s\t%s\n", d.Title(), windowText(win, open))
	}
	_ = tw.Flush()
}

func windowText(win model.TimeWindow, open bool) string {
	if !open || win.StartTime == hours.Closed {
		return "Closed"
	}
	return fmt.Sprintf("%s - %s", labelOrBlank(win.StartTime), labelOrBlank(win.EndTime))
}

func labelOrBlank(v string) string {
	if v == "" {
		return "?"
	}
	return hours.Label(v)
}
