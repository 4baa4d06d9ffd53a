package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/cwarden/schedule/internal/calendar"
	"github.com/cwarden/schedule/internal/ical"
	"github.com/cwarden/schedule/internal/log"
	"github.com/spf13/cobra"
)

var (
	exportOutput string
	importDryRun bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write all events as an iCalendar file",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

var importCmd = &cobra.Command{
	Use:   "import <file.ics>",
	Short: "Add the timed events of an iCalendar file",
	Long: `Import VEVENTs from an iCalendar file. All-day events and events
spanning more than one day are skipped. Entries whose UID is already an
event id, or that match an existing event field for field, are left out,
so importing the same file twice adds nothing the second time.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default stdout)")
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "Validate and list events without saving")
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	s, _, closeStore, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer closeStore()

	events := s.All()
	if exportOutput == "" {
		if err := ical.Export(cmd.OutOrStdout(), events, time.Local); err != nil {
			return fmt.Errorf("export: %w", err)
		}
		log.Info("events exported", "count", len(events))
		return nil
	}

	f, err := os.Create(exportOutput)
	if err != nil {
		return err
	}
	if err := ical.Export(f, events, time.Local); err != nil {
		f.Close()
		return fmt.Errorf("export: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("write %s: %w", exportOutput, err)
	}
	log.Info("events exported", "count", len(events), "output", exportOutput)
	return nil
}

func runImport(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	entries, skipped, err := ical.Import(f, time.Local)
	if err != nil {
		return err
	}

	s, _, closeStore, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer closeStore()

	existing := make(map[calendar.Draft]bool)
	for _, e := range s.All() {
		existing[e.Draft()] = true
	}

	out := cmd.OutOrStdout()
	added, duplicates := 0, 0
	var errs []error
	for _, entry := range entries {
		draft := entry.Draft
		if _, ok := s.Get(entry.UID); ok || existing[draft] {
			log.Debug("skipping known calendar entry", "uid", entry.UID)
			duplicates++
			continue
		}
		if err := draft.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("%s %s: %w", draft.Date, draft.Title, err))
			continue
		}
		if importDryRun {
			fmt.Fprintf(out, "  %s %s - %s  %s\n", draft.Date, draft.StartTime, draft.EndTime, draft.Title)
			existing[draft] = true
			added++
			continue
		}
		event, err := s.Create(cmd.Context(), draft)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s %s: %w", draft.Date, draft.Title, err))
			continue
		}
		existing[event.Draft()] = true
		added++
	}

	verb := "Imported"
	if importDryRun {
		verb = "Would import"
	}
	fmt.Fprintf(out, "%s %d events, skipped %d unsupported, %d already present, %d invalid\n",
		verb, added, skipped, duplicates, len(errs))
	for _, err := range errs {
		log.Error("import entry rejected", err)
	}
	if added == 0 && len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
