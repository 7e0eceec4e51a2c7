// Package allocator owns the fixed memory partitions and is the only service
// allowed to change partition occupancy. Partitions are granted first-fit in
// partition order and released when a process terminates.
package allocator
