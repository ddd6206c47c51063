// Package profile provides optional runtime profiling backed by
// [github.com/pkg/profile].
//
// Profiling is compiled in only with the pprof build tag:
//
//	go build -tags pprof .
//
// Without the tag, [Modes] is empty and [Profiler.Start] does nothing.
//
// # Modes
//
//   - allocs:    memory allocation profiling (all allocations)
//   - block:     block (synchronization) profiling
//   - clock:     wall-clock profiling
//   - cpu:       CPU profiling
//   - goroutine: goroutine profiling
//   - heap:      heap profiling (live allocations)
//   - mem:       general memory profiling
//   - mutex:     mutex contention profiling
//   - thread:    thread creation profiling
//   - trace:     execution tracing
//
// # Usage
//
//	p := profile.Profiler{Mode: "cpu", Dir: "/tmp/profiles", Quiet: true}
//	defer p.Start().Stop()
//
// Profiles are written to Dir with names matching the mode (cpu.pprof,
// mem.pprof, ...) and are read with go tool pprof:
//
//	go tool pprof -http=: /tmp/profiles/cpu.pprof
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`
