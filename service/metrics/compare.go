package metrics

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
)

// Compare writes one row per policy so runs of the same workload can be
// compared side by side. Nil statistics are skipped.
func Compare(w io.Writer, stats ...*Statistics) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Policy", "Makespan", "Throughput", "Avg Waiting", "Avg Turnaround", "Avg Response", "Preemptions", "Expiries"})
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	for _, item := range stats {
		if item == nil {
			continue
		}
		table.Append([]string{
			item.Policy,
			strconv.Itoa(item.Makespan),
			fmt.Sprintf("%.4f", item.Throughput),
			fmt.Sprintf("%.2f", item.AvgWaiting),
			fmt.Sprintf("%.2f", item.AvgTurnaround),
			fmt.Sprintf("%.2f", item.AvgResponse),
			strconv.Itoa(item.Preemptions),
			strconv.Itoa(item.Expiries),
		})
	}
	table.Render()
}
