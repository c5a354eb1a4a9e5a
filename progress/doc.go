// Package progress provides cooperative progress reporting and cancellation
// for long-running enumerations.
//
// A Tracker carries a monotone completion percentage, a free-form stage
// description and a cancellation flag. Enumerators poll the flag (through
// Poll) at the head of their outer loops; on cancellation they stop emitting
// and return whatever they have found so far, without an error.
//
// Watchdog turns a wall-clock budget into a cancellation: it cancels the
// tracker once the budget runs out or the context ends, and its stop
// function waits for the helper goroutine to exit.
//
// All Tracker methods are safe for concurrent use.
package progress
