package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ReeshabhSaini/CampusGrid-sub000/internal/dto"
	appErrors "github.com/ReeshabhSaini/CampusGrid-sub000/pkg/errors"
)

func newImportCommand(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Bulk-loads timetable data from CSV files",
	}

	var partial bool
	sessions := &cobra.Command{
		Use:   "sessions <file.csv>",
		Short: "Imports recurring weekly sessions",
		Long: `Imports recurring sessions from a CSV with the header
day_of_week,course_code,start_time,end_time,hall,professor_id,type,group

Every row is checked for hall, professor and cohort clashes against the stored
timetable and the rows before it. Without --partial a single clash aborts the import.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := readFile(args[0], readSessionRows)
			if err != nil {
				return err
			}
			a, err := rt.open()
			if err != nil {
				return err
			}
			resolver := referenceResolver{
				courses:    a.Repositories.Courses,
				halls:      a.Repositories.Halls,
				professors: a.Repositories.Professors,
			}
			items, err := resolver.resolve(cmd.Context(), rows)
			if err != nil {
				return err
			}
			result, err := a.Services.Timetable.BulkCreate(cmd.Context(), dto.BulkCreateSessionsRequest{Items: items, PartialOnError: partial})
			if err != nil {
				return describe(err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "imported %d sessions\n", len(result.Created))
			for _, conflict := range result.Conflicts {
				fmt.Fprintf(out, "skipped: %s clash with session %s on %s %s\n", strings.ToLower(conflict.Dimension), conflict.SessionID, conflict.DayOfWeek, conflict.TimeSlot)
			}
			rt.logger.Info("sessions imported", zap.Int("created", len(result.Created)), zap.Int("skipped", len(result.Conflicts)))
			return nil
		},
	}
	sessions.Flags().BoolVar(&partial, "partial", false, "skip clashing rows instead of aborting")

	holidays := &cobra.Command{
		Use:   "holidays <file.csv>",
		Short: "Imports campus holidays",
		Long: `Imports holidays from a CSV with the header date,description.
Dates that already carry a holiday are reported and skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := readFile(args[0], readHolidayRows)
			if err != nil {
				return err
			}
			a, err := rt.open()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			created := 0
			for _, row := range rows {
				if _, err := a.Services.Holidays.Create(cmd.Context(), row); err != nil {
					if appErrors.FromError(err).Code == appErrors.ErrConflict.Code {
						fmt.Fprintf(out, "skipped %s: already a holiday\n", row.Date)
						continue
					}
					return fmt.Errorf("holiday %s: %w", row.Date, describe(err))
				}
				created++
			}
			fmt.Fprintf(out, "imported %d holidays\n", created)
			rt.logger.Info("holidays imported", zap.Int("created", created), zap.Int("rows", len(rows)))
			return nil
		},
	}

	cmd.AddCommand(sessions, holidays)
	return cmd
}

func readFile[T any](path string, parse func(io.Reader) (T, error)) (T, error) {
	var zero T
	file, err := os.Open(path)
	if err != nil {
		return zero, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close() //nolint:errcheck
	result, err := parse(file)
	if err != nil {
		return zero, fmt.Errorf("%s: %w", path, err)
	}
	return result, nil
}

// describe renders a service error for a terminal, keeping the code visible.
func describe(err error) error {
	appErr := appErrors.FromError(err)
	if appErr.Err != nil && appErr.Code == appErrors.ErrStore.Code {
		return fmt.Errorf("%s: %s: %w", appErr.Code, appErr.Message, appErr.Err)
	}
	return fmt.Errorf("%s: %s", appErr.Code, appErr.Message)
}
