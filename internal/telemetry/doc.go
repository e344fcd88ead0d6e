// Package telemetry implements the node's operational cycle: the
// fixed-period loop that reads both sensors, assembles the consolidated
// JSON payload and publishes it.
//
// # Cycle
//
// Each tick checks connectivity first. Connected: acquire both sensors
// (blocking bus reads with their fixed settling delays), assemble the
// payload, attempt one publish. Disconnected: re-invoke the connection's
// StartConnect and try again next tick. Sensor reads always complete
// before assembly, and assembly before the publish attempt.
//
// # Degradation
//
// A failing sensor never aborts the cycle: its readings are replaced by
// 0.0 so the payload always carries exactly three well-formed numeric
// fields. A publish that cannot be accepted (disconnected, or the
// previous delivery still unacknowledged) is simply skipped; the next
// tick publishes fresh readings.
package telemetry
