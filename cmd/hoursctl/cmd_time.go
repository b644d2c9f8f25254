package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/AIProjectsAxis/AI-Receiptionist-User-sub002/internal/datetime"
)

var (
	viewerZone  string
	formatMode  string
	composeUTC  bool
	composeZone string
)

var timeCmd = &cobra.Command{
	Use:   "time",
	Short: "Date and time helpers used by the dashboard",
	Long: `Exposes the dashboard's date and time conversions.

The viewer zone for relative output comes from --tz, then display.timezone
in the config, then UTC.`,
}

var timeFormatCmd = &cobra.Command{
	Use:   "format [iso]",
	Short: "Render an instant as time, date or relative label",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mode := datetime.Mode(formatMode)
		switch mode {
		case datetime.ModeTime, datetime.ModeDate, datetime.ModeBoth:
		default:
			return fmt.Errorf("invalid --mode %q: want time, date or both", formatMode)
		}
		return printLine(cmd, viewerFormatter().FormatDateTime(args[0], mode))
	},
}

var timeUnixCmd = &cobra.Command{
	Use:   "unix [seconds]",
	Short: "Render an epoch timestamp relative to today",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sec, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid timestamp %q: %w", args[0], err)
		}
		return printLine(cmd, viewerFormatter().ConvertUnixTimestamp(sec))
	},
}

var timeComposeCmd = &cobra.Command{
	Use:   "compose [date] [HH:MM]",
	Short: "Combine a date and a wall-clock time into a UTC ISO instant",
	Long: `By default the time is read as wall-clock time in --zone (or the viewer zone).
With --utc-fields the fields are taken as UTC directly.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		f := viewerFormatter()
		if composeUTC {
			return printLine(cmd, f.ComposeUTCFieldsDirectly(args[0], args[1]))
		}
		var loc *time.Location
		if composeZone != "" {
			l, err := time.LoadLocation(composeZone)
			if err != nil {
				return fmt.Errorf("unknown zone %q: %w", composeZone, err)
			}
			loc = l
		}
		return printLine(cmd, f.ComposeLocalWallClockToUTC(args[0], args[1], loc))
	},
}

var timeToUTCCmd = &cobra.Command{
	Use:   "to-utc [local] [zone]",
	Short: "Convert a datetime-local value in a zone to a UTC ISO instant",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return printLine(cmd, viewerFormatter().LocalToUTC(args[0], args[1]))
	},
}

var timeFromUTCCmd = &cobra.Command{
	Use:   "from-utc [iso] [zone]",
	Short: "Convert a UTC ISO instant to a datetime-local value in a zone",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return printLine(cmd, viewerFormatter().UTCToLocal(args[0], args[1]))
	},
}

var timeFormatDateCmd = &cobra.Command{
	Use:   "format-date [iso] [zone]",
	Short: "Render an instant as dd-Mon yyyy HH:mm",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return printLine(cmd, viewerFormatter().FormatDate(args[0], optionalArg(args, 1)))
	},
}

var timeCampaignDateCmd = &cobra.Command{
	Use:   "campaign-date [iso] [zone]",
	Short: "Render a campaign instant with its zone abbreviation",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return printLine(cmd, viewerFormatter().FormatCampaignDate(args[0], optionalArg(args, 1)))
	},
}

var timeDurationCmd = &cobra.Command{
	Use:   "duration [milliseconds]",
	Short: "Render a call duration as M:SS",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ms, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", args[0], err)
		}
		return printLine(cmd, datetime.FormatDuration(ms))
	},
}

var timeInitialsCmd = &cobra.Command{
	Use:   "initials [name...]",
	Short: "Print avatar initials for a name",
	RunE: func(cmd *cobra.Command, args []string) error {
		return printLine(cmd, datetime.GetInitials(strings.Join(args, " ")))
	},
}

var timeAPIDateCmd = &cobra.Command{
	Use:   "api-date [rfc3339|now]",
	Short: "Render an instant for an API query string",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t := time.Now().In(viewerFormatter().Location())
		if args[0] != "now" {
			parsed, err := time.Parse(time.RFC3339, args[0])
			if err != nil {
				return fmt.Errorf("invalid instant %q: %w", args[0], err)
			}
			t = parsed
		}
		return printLine(cmd, datetime.FormatDateForAPI(t))
	},
}

func init() {
	timeCmd.PersistentFlags().StringVar(&viewerZone, "tz", "", "Viewer time zone (IANA name)")
	timeFormatCmd.Flags().StringVar(&formatMode, "mode", string(datetime.ModeBoth), "time, date or both")
	timeComposeCmd.Flags().BoolVar(&composeUTC, "utc-fields", false, "Take date and time as UTC fields")
	timeComposeCmd.Flags().StringVar(&composeZone, "zone", "", "Zone of the wall-clock time")

	timeCmd.AddCommand(timeFormatCmd)
	timeCmd.AddCommand(timeUnixCmd)
	timeCmd.AddCommand(timeComposeCmd)
	timeCmd.AddCommand(timeToUTCCmd)
	timeCmd.AddCommand(timeFromUTCCmd)
	timeCmd.AddCommand(timeFormatDateCmd)
	timeCmd.AddCommand(timeCampaignDateCmd)
	timeCmd.AddCommand(timeDurationCmd)
	timeCmd.AddCommand(timeInitialsCmd)
	timeCmd.AddCommand(timeAPIDateCmd)
}

func viewerFormatter() *datetime.Formatter {
	return datetime.NewFormatter(viewerLocation())
}

func viewerLocation() *time.Location {
	if viewerZone != "" {
		if loc, err := time.LoadLocation(viewerZone); err == nil {
			return loc
		}
	}
	if cfg, err := loadConfig(); err == nil {
		return cfg.DisplayLocation()
	}
	return time.UTC
}

func optionalArg(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}

func printLine(cmd *cobra.Command, s string) error {
	_, err := fmt.Fprintln(cmd.OutOrStdout(), s)
	return err
}
