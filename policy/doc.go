// Package policy provides the scheduling disciplines that the simulation
// engine delegates ordering and preemption decisions to. Two policies are
// available: external priority (non-preemptive) and external priority with
// round-robin time slicing.
package policy
