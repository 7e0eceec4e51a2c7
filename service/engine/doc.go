// Package engine runs the tick-driven scheduling simulation.
//
// Each tick executes a fixed sequence of passes: admission, I/O completion,
// preemption, dispatch and execution. The running process consumes the time
// unit [t, t+1) and its outcome (termination, I/O block or quantum expiry)
// is stamped at t+1. Every state change is recorded as a trace record and
// published to subscribed listeners.
package engine
