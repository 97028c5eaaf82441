package console

import (
	"bytes"
	"testing"

	"github.com/specialistvlad/gridplan/internal/report"
	"github.com/stretchr/testify/assert"
)

func TestPrinter_Summary(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, true)

	p.Median(7)
	p.OutputLocation("output.json")

	assert.Equal(t, "Median of Overall execution time of workflows : 7 seconds\n"+
		"Task schedule can be found in file output.json\n", buf.String())
}

func TestPrinter_Stalled(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf, true).Stalled("no_workers", []string{"wf/a", "wf/b"})

	assert.Equal(t, "Warning: 2 task(s) left unscheduled (no_workers): wf/a, wf/b\n", buf.String())
}

func TestPrinter_Table(t *testing.T) {
	var buf bytes.Buffer
	rep := &report.Report{Workflows: []report.WorkflowReport{
		{Name: "etl", ScheduledAt: 1, CompletedAt: 12, Tasks: make([]report.TaskReport, 3)},
		{Name: "x", Tasks: []report.TaskReport{}},
	}}

	NewPrinter(&buf, true).Table(rep)

	want := "" +
		"WORKFLOW  SCHEDULED_AT  COMPLETED_AT  SPAN  TASKS\n" +
		"--------  ------------  ------------  ----  -----\n" +
		"etl       1             12            11    3\n" +
		"x         0             0             0     0\n"
	assert.Equal(t, want, buf.String())
}
