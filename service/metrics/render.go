package metrics

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
)

// Render writes statistics as a table
func Render(w io.Writer, stats *Statistics) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"PID", "Priority", "Arrival", "Service", "First Run", "Finish", "Response", "Waiting", "Turnaround"})
	table.SetAlignment(tablewriter.ALIGN_RIGHT)

	rows := make([][]string, 0, len(stats.Processes))
	for _, p := range stats.Processes {
		rows = append(rows, []string{
			strconv.Itoa(p.PID),
			strconv.Itoa(p.Priority),
			strconv.Itoa(p.Arrival),
			strconv.Itoa(p.Service),
			tick(p.FirstRun),
			tick(p.Termination),
			strconv.Itoa(p.Response),
			strconv.Itoa(p.Waiting),
			strconv.Itoa(p.Turnaround),
		})
	}
	table.AppendBulk(rows)
	table.SetFooter([]string{"", "", "", "", "", "Average",
		fmt.Sprintf("%.2f", stats.AvgResponse),
		fmt.Sprintf("%.2f", stats.AvgWaiting),
		fmt.Sprintf("%.2f", stats.AvgTurnaround),
	})
	table.Render()

	summary := tablewriter.NewWriter(w)
	summary.SetHeader([]string{"Policy", "Makespan", "Throughput", "Dispatches", "Preemptions", "Expiries", "I/O Blocks"})
	summary.Append([]string{
		stats.Policy,
		strconv.Itoa(stats.Makespan),
		fmt.Sprintf("%.4f", stats.Throughput),
		strconv.Itoa(stats.Dispatches),
		strconv.Itoa(stats.Preemptions),
		strconv.Itoa(stats.Expiries),
		strconv.Itoa(stats.IOBlocks),
	})
	summary.Render()
}

func tick(value int) string {
	if value == NotObserved {
		return "-"
	}
	return strconv.Itoa(value)
}
