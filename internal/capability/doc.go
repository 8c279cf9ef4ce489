// Package capability registers the native functions scripts may rely on.
//
// Register runs once against a fresh runtime, before any script is loaded:
//
//	Theorem.monotonic()        seconds from a clock that never goes backwards
//	IO.stdout.write(s, ...)    write strings, returns the byte count
//	IO.stdout.puts(s, ...)     write each value on its own line
//	IO.stdout.fileno()         the stream's descriptor
//	IO.stdout.nonblock()       put the stream's descriptor in non-blocking mode
//
// The IO toggle is optional. nonblock is defined only when Options.IOToggle
// is set and the platform supports it, so scripts must test for it before use.
package capability
