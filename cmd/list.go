package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/cwarden/schedule/internal/calendar"
	"github.com/spf13/cobra"
)

var (
	listDate string
	listView string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List events for a day, week or month and exit",
	Long: `List events in a simple text format and exit. Without flags the
events for today are shown.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVar(&listDate, "date", "", "Date to list (YYYY-MM-DD, default today)")
	listCmd.Flags().StringVar(&listView, "view", "day", "Period to list: day, week or month")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	mode, err := calendar.ParseViewMode(listView)
	if err != nil {
		return err
	}

	anchor := calendar.Today(time.Now())
	if listDate != "" {
		anchor, err = time.ParseInLocation(calendar.DateLayout, listDate, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --date %q: %w", listDate, err)
		}
	}

	s, _, closeStore, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer closeStore()

	printPeriod(cmd.OutOrStdout(), anchor, mode, s.All(), cfg.TwelveHour())
	return nil
}

func periodDays(anchor time.Time, mode calendar.ViewMode) []time.Time {
	switch mode {
	case calendar.ViewMonth:
		var days []time.Time
		for _, day := range calendar.MonthGrid(anchor) {
			if !day.IsZero() {
				days = append(days, day)
			}
		}
		return days
	case calendar.ViewWeek:
		return calendar.WeekDays(anchor)
	default:
		return []time.Time{anchor}
	}
}

func printPeriod(w io.Writer, anchor time.Time, mode calendar.ViewMode, events []calendar.Event, twelveHour bool) {
	fmt.Fprintf(w, "Events for %s:\n", calendar.Title(anchor, mode))

	found := false
	for _, day := range periodDays(anchor, mode) {
		dayEvents := calendar.EventsOn(day, events)
		if len(dayEvents) == 0 {
			continue
		}
		found = true
		if mode != calendar.ViewDay {
			fmt.Fprintf(w, "%s\n", day.Format("Mon Jan 2"))
		}
		for _, event := range dayEvents {
			fmt.Fprintf(w, "  %s - %s  %s  [%s]\n",
				calendar.FormatClock(event.StartTime, twelveHour),
				calendar.FormatClock(event.EndTime, twelveHour),
				event.Title,
				event.ID)
		}
	}

	if !found {
		fmt.Fprintln(w, "No events found.")
	}
}
