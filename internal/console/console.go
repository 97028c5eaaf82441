// Package console renders human-readable run summaries on a terminal.
package console

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/specialistvlad/gridplan/internal/report"
)

// Printer writes summaries to w. Colors follow the library's terminal
// detection unless disabled explicitly.
type Printer struct {
	w io.Writer

	value   *color.Color
	warning *color.Color
	header  *color.Color
}

// NewPrinter creates a printer writing to w.
func NewPrinter(w io.Writer, noColor bool) *Printer {
	p := &Printer{
		w:       w,
		value:   color.New(color.FgGreen, color.Bold),
		warning: color.New(color.FgYellow),
		header:  color.New(color.FgCyan, color.Bold),
	}
	if noColor {
		p.value.DisableColor()
		p.warning.DisableColor()
		p.header.DisableColor()
	}
	return p
}

// Median prints the median workflow execution time.
func (p *Printer) Median(median int64) {
	fmt.Fprintf(p.w, "Median of Overall execution time of workflows : %s seconds\n", p.value.Sprint(median))
}

// OutputLocation prints where the schedule document was written.
func (p *Printer) OutputLocation(path string) {
	fmt.Fprintf(p.w, "Task schedule can be found in file %s\n", path)
}

// Stalled warns about tasks that could not be placed.
func (p *Printer) Stalled(reason string, unscheduled []string) {
	p.warning.Fprintf(p.w, "Warning: %d task(s) left unscheduled (%s): %s\n",
		len(unscheduled), reason, strings.Join(unscheduled, ", "))
}

// RunID prints the id a run was stored under.
func (p *Printer) RunID(id string) {
	fmt.Fprintf(p.w, "Schedule stored as run %s\n", id)
}

// Table prints one row per workflow with its bounds and span.
func (p *Printer) Table(rep *report.Report) {
	headers := []string{"WORKFLOW", "SCHEDULED_AT", "COMPLETED_AT", "SPAN", "TASKS"}
	rows := make([][]string, 0, len(rep.Workflows))
	for _, w := range rep.Workflows {
		rows = append(rows, []string{
			w.Name,
			strconv.FormatInt(w.ScheduledAt, 10),
			strconv.FormatInt(w.CompletedAt, 10),
			strconv.FormatInt(w.Span(), 10),
			strconv.Itoa(len(w.Tasks)),
		})
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], len(cell))
		}
	}

	for i, h := range headers {
		p.header.Fprint(p.w, pad(h, widths[i], i == len(headers)-1))
	}
	fmt.Fprintln(p.w)
	for i := range headers {
		fmt.Fprint(p.w, pad(strings.Repeat("-", widths[i]), widths[i], i == len(headers)-1))
	}
	fmt.Fprintln(p.w)
	for _, row := range rows {
		for i, cell := range row {
			fmt.Fprint(p.w, pad(cell, widths[i], i == len(row)-1))
		}
		fmt.Fprintln(p.w)
	}
}

func pad(s string, width int, last bool) string {
	if last {
		return s
	}
	return fmt.Sprintf("%-*s  ", width, s)
}
