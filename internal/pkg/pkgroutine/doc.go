// Package pkgroutine runs background work with bounded concurrency.
//
// A Manager names each task, turns panics into errors, and reports every
// failure from Wait so the application can log them on shutdown.
package pkgroutine
