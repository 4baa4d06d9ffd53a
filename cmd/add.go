package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/cwarden/schedule/internal/calendar"
	"github.com/cwarden/schedule/internal/parser"
	"github.com/cwarden/schedule/internal/store"
	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add <text>",
	Short: "Add an event from a line like \"tomorrow 2pm-3pm Dentist\"",
	Long: `Add an event using the same quick-add syntax as the TUI. The date
defaults to today, the start to the nearest half hour and the length to
default_duration minutes.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an event by id",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

func init() {
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(deleteCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	p := parser.NewQuickAdd()
	p.SetNow(time.Now())
	p.SetDefaultDuration(cfg.DefaultDuration)

	draft, err := p.Parse(strings.Join(args, " "))
	if err != nil {
		return err
	}
	draft.Color = cfg.DefaultColor

	s, _, closeStore, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer closeStore()

	event, err := s.Create(cmd.Context(), *draft)
	if err != nil {
		return err
	}

	twelveHour := cfg.TwelveHour()
	fmt.Fprintf(cmd.OutOrStdout(), "Added %s: %s %s - %s  %s\n",
		event.ID,
		event.Date,
		calendar.FormatClock(event.StartTime, twelveHour),
		calendar.FormatClock(event.EndTime, twelveHour),
		event.Title)
	return nil
}

func runDelete(cmd *cobra.Command, args []string) error {
	s, _, closeStore, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer closeStore()

	id := args[0]
	event, ok := s.Get(id)
	if !ok {
		return fmt.Errorf("%w: %s", store.ErrNotFound, id)
	}
	if err := s.Delete(cmd.Context(), id); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s: %s\n", event.ID, event.Title)
	return nil
}
