package memory

// Free marks a partition without occupant
const Free = -1

// Partition represents a fixed-size memory region
type Partition struct {
	Number   int `json:"number"`
	Capacity int `json:"capacity"`
	Occupant int `json:"occupant"`
}

// IsFree returns true when no process occupies the partition
func (p *Partition) IsFree() bool {
	return p.Occupant == Free
}

// Fits returns true when the partition is free and large enough
func (p *Partition) Fits(size int) bool {
	return p.IsFree() && p.Capacity >= size
}

// Snapshot represents memory state at a given tick
type Snapshot struct {
	Partitions []Partition `json:"partitions"`
	Used       int         `json:"used"`
	Free       int         `json:"free"`
	Usable     int         `json:"usable"`
	Total      int         `json:"total"`
}

// Occupied returns the number of occupied partitions
func (s *Snapshot) Occupied() int {
	count := 0
	for i := range s.Partitions {
		if !s.Partitions[i].IsFree() {
			count++
		}
	}
	return count
}
