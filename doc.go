// Package schedsim simulates a single-CPU batch operating system with
// fixed-partition memory and external-priority scheduling.
//
// A workload of processes is admitted into memory partitions as they arrive,
// scheduled either by external priority (ep) or by external priority with
// round robin and preemption (ep-rr), and every state change is recorded in
// an execution trace. End-users typically interact with the simulator via
// the Service façade exposed by the root package:
//
//	srv := schedsim.New(schedsim.WithPolicyMode("ep-rr"))
//	result, err := srv.Run(ctx, "input_data.txt")
//	fmt.Println(result.Ticks, result.Statistics.AvgTurnaround)
//
// Sub-packages provide the memory allocator, scheduling policies, the tick
// engine, trace recording and run statistics.
package schedsim
