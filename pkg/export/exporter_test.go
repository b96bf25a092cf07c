package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTable() Table {
	return Table{
		Columns: []string{"Date", "Title", "Reason"},
		Rows: [][]string{
			{"2024-03-11", "CS101 Intro", ""},
			{"2024-03-18", "Founders Day", "campus closed, exams moved"},
		},
		Shaded: map[int]bool{1: true},
	}
}

func TestCSVExporterKeepsColumnOrder(t *testing.T) {
	body, err := NewCSVExporter().Render(sampleTable())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(body)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Date,Title,Reason", lines[0])
	assert.Equal(t, "2024-03-11,CS101 Intro,", lines[1])
	assert.Equal(t, `2024-03-18,Founders Day,"campus closed, exams moved"`, lines[2])
}

func TestExportersRejectRaggedRows(t *testing.T) {
	table := sampleTable()
	table.Rows = append(table.Rows, []string{"2024-03-25"})

	_, err := NewCSVExporter().Render(table)
	assert.EqualError(t, err, "csv row 2 has 1 cells, want 3")

	_, err = NewPDFExporter().Render(table, "x")
	assert.Error(t, err)

	_, err = NewCSVExporter().Render(Table{})
	assert.Error(t, err)
}

func TestPDFExporterRendersDocument(t *testing.T) {
	body, err := NewPDFExporter().Render(sampleTable(), "timetable professor P")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(body), "%PDF"))
}
