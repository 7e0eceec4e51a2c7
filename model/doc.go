// Package model contains the in-memory representation of the simulated
// system: process control blocks (process), memory partitions (memory) and
// execution trace records (trace).
package model
