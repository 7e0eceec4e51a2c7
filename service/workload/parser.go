package workload

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"strconv"

	"github.com/viant/parsly"
	"github.com/viant/schedsim/model/process"
)

// FieldCount is the number of comma separated values in a workload record:
// PID, memory, arrival, service, I/O interval, I/O duration, priority.
const FieldCount = 7

var (
	// ErrMalformedRecord is returned when a line cannot be parsed as a workload record
	ErrMalformedRecord = errors.New("workload: malformed record")
	// ErrEmpty is returned when the input holds no records
	ErrEmpty = errors.New("workload: no records")
)

// Parse decodes workload records, one per line. Blank lines and lines
// starting with '#' are skipped.
func Parse(data []byte) ([]*process.Process, error) {
	var ret []*process.Process
	seen := map[int]int{}
	scanner := bufio.NewScanner(bytes.NewReader(data))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 || line[0] == '#' {
			continue
		}
		fields, err := parseLine(line)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedRecord, lineNo, err)
		}
		p, err := newProcess(fields)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedRecord, lineNo, err)
		}
		if prev, ok := seen[p.PID]; ok {
			return nil, fmt.Errorf("%w: line %d: pid %d already defined on line %d", ErrMalformedRecord, lineNo, p.PID, prev)
		}
		seen[p.PID] = lineNo
		ret = append(ret, p)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan workload: %w", err)
	}
	if len(ret) == 0 {
		return nil, ErrEmpty
	}
	return ret, nil
}

// parseLine tokenizes: number (',' number)* [comment]
func parseLine(line []byte) ([]int, error) {
	cursor := parsly.NewCursor("", line, 0)
	var fields []int
	for {
		matched := cursor.MatchAfterOptional(whitespaceToken, numberToken)
		if matched.Code != numberToken.Code {
			return nil, cursor.NewError(numberToken)
		}
		value, err := strconv.Atoi(matched.Text(cursor))
		if err != nil {
			return nil, err
		}
		fields = append(fields, value)

		matched = cursor.MatchAfterOptional(whitespaceToken, commaToken, commentToken)
		switch matched.Code {
		case commaToken.Code:
			continue
		case commentToken.Code:
			return fields, nil
		}
		if cursor.Pos < cursor.InputSize {
			return nil, cursor.NewError(commaToken)
		}
		return fields, nil
	}
}

func newProcess(fields []int) (*process.Process, error) {
	if len(fields) != FieldCount {
		return nil, fmt.Errorf("expected %d fields, got %d", FieldCount, len(fields))
	}
	pid, memory, arrival, service, ioInterval, ioDuration, priority := fields[0], fields[1], fields[2], fields[3], fields[4], fields[5], fields[6]
	if memory == 0 {
		return nil, fmt.Errorf("pid %d: memory must be positive", pid)
	}
	if service == 0 {
		return nil, fmt.Errorf("pid %d: service time must be positive", pid)
	}
	return process.New(pid, memory, arrival, service, priority, ioInterval, ioDuration), nil
}
