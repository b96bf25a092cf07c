package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ReeshabhSaini/CampusGrid-sub000/internal/dto"
	"github.com/ReeshabhSaini/CampusGrid-sub000/pkg/storage"
)

func newFreeSlotsCommand(rt *runtime) *cobra.Command {
	var req dto.FreeSlotsRequest
	cmd := &cobra.Command{
		Use:   "free-slots",
		Short: "Lists slots where both a professor and a cohort are free",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := rt.open()
			if err != nil {
				return err
			}
			result, err := a.Services.Availability.FreeSlots(cmd.Context(), req)
			if err != nil {
				return describe(err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (%s): %d free slots\n", result.Date, result.DayOfWeek, len(result.FreeSlots))
			for _, slot := range result.FreeSlots {
				fmt.Fprintln(out, slot)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&req.Date, "date", "", "date as YYYY-MM-DD")
	cmd.Flags().StringVar(&req.ProfessorID, "professor", "", "professor id")
	cmd.Flags().StringVar(&req.Branch, "branch", "", "cohort branch")
	cmd.Flags().IntVar(&req.Semester, "semester", 0, "cohort semester")
	for _, name := range []string{"date", "professor", "branch", "semester"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

func newHallsCommand(rt *runtime) *cobra.Command {
	var req dto.AvailableHallsRequest
	cmd := &cobra.Command{
		Use:     "halls",
		Short:   "Lists lecture halls free for a slot",
		Example: `  timetablectl halls --date 2024-03-13 --slot "14:00:00 - 15:00:00"`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := rt.open()
			if err != nil {
				return err
			}
			result, err := a.Services.Halls.AvailableHalls(cmd.Context(), req)
			if err != nil {
				return describe(err)
			}
			if len(result.Available) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no hall is free")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(result.Available, "\n"))
			return nil
		},
	}
	cmd.Flags().StringVar(&req.Date, "date", "", "date as YYYY-MM-DD")
	cmd.Flags().StringVar(&req.TimeSlot, "slot", "", `slot as "HH:MM:SS - HH:MM:SS"`)
	_ = cmd.MarkFlagRequired("date")
	_ = cmd.MarkFlagRequired("slot")
	return cmd
}

func newExportCommand(rt *runtime) *cobra.Command {
	var req dto.CalendarExportRequest
	var outDir string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Writes a materialized calendar to disk as CSV, PDF or iCalendar",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := rt.open()
			if err != nil {
				return err
			}
			result, err := a.Services.Export.Render(cmd.Context(), req)
			if err != nil {
				return describe(err)
			}
			store, err := storage.NewLocalStorage(outDir)
			if err != nil {
				return err
			}
			path, err := store.Save(result.Filename, result.Body)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(w, "file\t%s\n", path)
			fmt.Fprintf(w, "type\t%s\n", result.ContentType)
			fmt.Fprintf(w, "bytes\t%d\n", len(result.Body))
			return w.Flush()
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&req.Format, "format", "ics", "csv, pdf or ics")
	flags.StringVar(&req.ProfessorID, "professor", "", "professor id")
	flags.StringVar(&req.StudentID, "student", "", "student id")
	flags.StringVar(&req.Branch, "branch", "", "cohort branch")
	flags.IntVar(&req.Semester, "semester", 0, "cohort semester")
	flags.StringVar(&req.ClassGroup, "class-group", "", "class group within the cohort")
	flags.StringVar(&req.TutorialGroup, "tutorial-group", "", "tutorial group within the cohort")
	flags.StringVar(&req.LabGroup, "lab-group", "", "lab group within the cohort")
	flags.IntVar(&req.Weeks, "weeks", 0, "weeks to project (0 uses the configured default)")
	flags.StringVar(&outDir, "out", "./exports", "directory to write into")
	cmd.MarkFlagsMutuallyExclusive("professor", "student", "branch")
	return cmd
}
