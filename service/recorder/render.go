package recorder

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/viant/schedsim/model/memory"
	"github.com/viant/schedsim/model/trace"
)

const border = "+----------------------------------------------------+\n"

// Render writes records in the supplied format
func Render(w io.Writer, format string, records []trace.Record) error {
	switch format {
	case FormatText, "":
		return renderText(w, records)
	case FormatJSON:
		return renderJSON(w, records)
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

func renderText(w io.Writer, records []trace.Record) error {
	for _, record := range records {
		var err error
		switch record.Kind {
		case trace.KindHeader:
			_, err = io.WriteString(w, border+"|Time of Transition |PID |   Old State |   New State |\n"+border)
		case trace.KindTransition:
			t := record.Transition
			_, err = fmt.Fprintf(w, "|%18d |%3d |%12s |%12s |\n", record.Tick, t.PID, t.From, t.To)
		case trace.KindSnapshot:
			err = renderSnapshot(w, record.Tick, record.Snapshot)
		case trace.KindFooter:
			_, err = io.WriteString(w, border)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func renderSnapshot(w io.Writer, tick int, snapshot *memory.Snapshot) error {
	if snapshot == nil {
		return nil
	}
	if _, err := fmt.Fprintf(w, "\nMemory State at time %d \n", tick); err != nil {
		return err
	}
	for _, partition := range snapshot.Partitions {
		var err error
		if partition.IsFree() {
			_, err = fmt.Fprintf(w, "Partition %d: FREE (size %d)\n", partition.Number, partition.Capacity)
		} else {
			_, err = fmt.Fprintf(w, "Partition %d: USED by PID %d (size %d)\n", partition.Number, partition.Occupant, partition.Capacity)
		}
		if err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "Total memory used: %d\nTotal free memory: %d\nTotal usable memory: %d\n\n", snapshot.Used, snapshot.Free, snapshot.Usable)
	return err
}

func renderJSON(w io.Writer, records []trace.Record) error {
	encoder := json.NewEncoder(w)
	for i := range records {
		if err := encoder.Encode(&records[i]); err != nil {
			return err
		}
	}
	return nil
}
