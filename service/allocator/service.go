package allocator

import (
	"errors"
	"fmt"

	"github.com/viant/schedsim/model/memory"
	"github.com/viant/schedsim/model/process"
)

var (
	// ErrNotAssigned is returned when releasing a process that holds no partition
	ErrNotAssigned = errors.New("allocator: process holds no partition")
	// ErrInvalidConfig is returned for an empty or non-positive partition layout
	ErrInvalidConfig = errors.New("allocator: invalid partition config")
)

// Config represents allocator service configuration
type Config struct {
	// Partitions lists partition capacities in allocation order
	Partitions []int `json:"partitions" yaml:"partitions"`
}

// DefaultConfig returns the default partition layout
func DefaultConfig() Config {
	return Config{
		Partitions: []int{40, 25, 15, 10, 8, 2},
	}
}

// Validate checks partition capacities
func (c Config) Validate() error {
	if len(c.Partitions) == 0 {
		return fmt.Errorf("%w: no partitions", ErrInvalidConfig)
	}
	for i, capacity := range c.Partitions {
		if capacity <= 0 {
			return fmt.Errorf("%w: partition %d capacity %d", ErrInvalidConfig, i+1, capacity)
		}
	}
	return nil
}

// Service allocates memory partitions to processes
type Service struct {
	config     Config
	partitions []*memory.Partition
	total      int
}

// New creates a new allocator service
func New(config Config) (*Service, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	ret := &Service{config: config}
	for i, capacity := range config.Partitions {
		ret.partitions = append(ret.partitions, &memory.Partition{
			Number:   i + 1,
			Capacity: capacity,
			Occupant: memory.Free,
		})
		ret.total += capacity
	}
	return ret, nil
}

// TryAssign grants the first free partition able to hold the process
func (s *Service) TryAssign(p *process.Process) bool {
	if p.Partition != process.NoPartition {
		return false
	}
	for _, partition := range s.partitions {
		if !partition.Fits(p.Memory) {
			continue
		}
		partition.Occupant = p.PID
		p.Partition = partition.Number
		return true
	}
	return false
}

// Release frees the partition held by the process
func (s *Service) Release(p *process.Process) error {
	if p.Partition == process.NoPartition {
		return fmt.Errorf("%w: pid %d", ErrNotAssigned, p.PID)
	}
	partition := s.lookup(p.Partition)
	if partition == nil || partition.Occupant != p.PID {
		return fmt.Errorf("%w: pid %d partition %d", ErrNotAssigned, p.PID, p.Partition)
	}
	partition.Occupant = memory.Free
	p.Partition = process.NoPartition
	return nil
}

// Fits reports whether any partition could ever hold size
func (s *Service) Fits(size int) bool {
	for _, partition := range s.partitions {
		if partition.Capacity >= size {
			return true
		}
	}
	return false
}

// Total returns total configured memory
func (s *Service) Total() int {
	return s.total
}

// InUse returns true when at least one partition is occupied
func (s *Service) InUse() bool {
	for _, partition := range s.partitions {
		if !partition.IsFree() {
			return true
		}
	}
	return false
}

// Snapshot returns current memory state
func (s *Service) Snapshot() *memory.Snapshot {
	ret := &memory.Snapshot{
		Partitions: make([]memory.Partition, 0, len(s.partitions)),
		Total:      s.total,
	}
	for _, partition := range s.partitions {
		ret.Partitions = append(ret.Partitions, *partition)
		if partition.IsFree() {
			ret.Free += partition.Capacity
		} else {
			ret.Used += partition.Capacity
		}
	}
	// whole-partition allocation leaves no fragmentation to subtract
	ret.Usable = ret.Free
	return ret
}

func (s *Service) lookup(number int) *memory.Partition {
	if number < 1 || number > len(s.partitions) {
		return nil
	}
	return s.partitions[number-1]
}
