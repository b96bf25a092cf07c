package cli

import (
	"context"
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/ReeshabhSaini/CampusGrid-sub000/internal/dto"
	"github.com/ReeshabhSaini/CampusGrid-sub000/internal/models"
)

var sessionColumns = []string{"day_of_week", "course_code", "start_time", "end_time", "hall", "professor_id", "type", "group"}

var holidayColumns = []string{"date", "description"}

// sessionRow is one line of a timetable upload. Courses are referenced by code
// and halls by name so files can be written by hand.
type sessionRow struct {
	Line        int
	DayOfWeek   string
	CourseCode  string
	StartTime   string
	EndTime     string
	Hall        string
	ProfessorID string
	Type        string
	Group       string
}

// readTable reads a CSV with a header row and returns one map per record keyed by
// lower-cased column name, plus the 1-based line number of each record.
func readTable(r io.Reader, required []string) ([]map[string]string, []int, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil, fmt.Errorf("csv is empty")
		}
		return nil, nil, fmt.Errorf("read csv header: %w", err)
	}
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))] = i
	}
	for _, name := range required {
		if _, ok := index[name]; !ok {
			return nil, nil, fmt.Errorf("csv header is missing column %q", name)
		}
	}

	var records []map[string]string
	var lines []int
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("read csv: %w", err)
		}
		line, _ := reader.FieldPos(0)
		row := make(map[string]string, len(index))
		blank := true
		for name, i := range index {
			if i < len(record) {
				row[name] = strings.TrimSpace(record[i])
				if row[name] != "" {
					blank = false
				}
			}
		}
		if blank {
			continue
		}
		records = append(records, row)
		lines = append(lines, line)
	}
	return records, lines, nil
}

func readSessionRows(r io.Reader) ([]sessionRow, error) {
	records, lines, err := readTable(r, sessionColumns[:len(sessionColumns)-1])
	if err != nil {
		return nil, err
	}
	rows := make([]sessionRow, len(records))
	for i, record := range records {
		for _, name := range sessionColumns[:len(sessionColumns)-1] {
			if record[name] == "" {
				return nil, fmt.Errorf("line %d: %s is empty", lines[i], name)
			}
		}
		rows[i] = sessionRow{
			Line:        lines[i],
			DayOfWeek:   record["day_of_week"],
			CourseCode:  record["course_code"],
			StartTime:   record["start_time"],
			EndTime:     record["end_time"],
			Hall:        record["hall"],
			ProfessorID: record["professor_id"],
			Type:        strings.ToLower(record["type"]),
			Group:       record["group"],
		}
	}
	return rows, nil
}

func readHolidayRows(r io.Reader) ([]dto.CreateHolidayRequest, error) {
	records, _, err := readTable(r, holidayColumns)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CreateHolidayRequest, len(records))
	for i, record := range records {
		out[i] = dto.CreateHolidayRequest{Date: record["date"], Description: record["description"]}
	}
	return out, nil
}

type courseLookup interface {
	FindByCode(ctx context.Context, code string) (*models.Course, error)
}

type hallLookup interface {
	FindByName(ctx context.Context, name string) (*models.LectureHall, error)
}

type professorLookup interface {
	FindByID(ctx context.Context, id string) (*models.Professor, error)
}

// referenceResolver turns course codes and hall names into ids.
type referenceResolver struct {
	courses    courseLookup
	halls      hallLookup
	professors professorLookup
}

// resolve looks up every distinct reference concurrently and reports all unknown
// references at once, each with the first line it appears on.
func (r referenceResolver) resolve(ctx context.Context, rows []sessionRow) ([]dto.CreateSessionRequest, error) {
	var refs []reference
	seen := map[reference]bool{}
	add := func(kind, value string, line int) {
		ref := reference{kind: kind, value: value}
		if seen[ref] {
			return
		}
		seen[ref] = true
		ref.line = line
		refs = append(refs, ref)
	}
	for _, row := range rows {
		add("course", strings.ToUpper(row.CourseCode), row.Line)
		add("hall", strings.ToLower(row.Hall), row.Line)
		add("professor", row.ProfessorID, row.Line)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(8)
	for i := range refs {
		ref := &refs[i]
		g.Go(func() error {
			id, err := r.lookup(gctx, ref.kind, ref.value)
			if errors.Is(err, sql.ErrNoRows) {
				ref.missing = true
				return nil
			}
			if err != nil {
				return fmt.Errorf("look up %s %q: %w", ref.kind, ref.value, err)
			}
			ref.id = id
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	ids := make(map[string]string, len(refs))
	var unknown []string
	for _, ref := range refs {
		if ref.missing {
			unknown = append(unknown, fmt.Sprintf("line %d: unknown %s %q", ref.line, ref.kind, ref.value))
			continue
		}
		ids[ref.kind+"/"+ref.value] = ref.id
	}
	if len(unknown) > 0 {
		return nil, fmt.Errorf("unresolved references:\n  %s", strings.Join(unknown, "\n  "))
	}

	out := make([]dto.CreateSessionRequest, len(rows))
	for i, row := range rows {
		out[i] = dto.CreateSessionRequest{
			DayOfWeek:     row.DayOfWeek,
			CourseID:      ids["course/"+strings.ToUpper(row.CourseCode)],
			StartTime:     row.StartTime,
			EndTime:       row.EndTime,
			LectureHallID: ids["hall/"+strings.ToLower(row.Hall)],
			ProfessorID:   ids["professor/"+row.ProfessorID],
			Type:          row.Type,
			Group:         row.Group,
		}
	}
	return out, nil
}

type reference struct {
	kind    string
	value   string
	line    int
	id      string
	missing bool
}

func (r referenceResolver) lookup(ctx context.Context, kind, value string) (string, error) {
	switch kind {
	case "course":
		course, err := r.courses.FindByCode(ctx, value)
		if err != nil {
			return "", err
		}
		return course.ID, nil
	case "hall":
		hall, err := r.halls.FindByName(ctx, value)
		if err != nil {
			return "", err
		}
		return hall.ID, nil
	default:
		professor, err := r.professors.FindByID(ctx, value)
		if err != nil {
			return "", err
		}
		return professor.ID, nil
	}
}
