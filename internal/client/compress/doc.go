// Package compress implements the compression worker pool.
//
// A Pool owns a fixed set of workers. A dispatcher goroutine keeps the set of
// idle workers and a FIFO queue of pending jobs; every worker handles exactly
// one job at a time and returns to the idle set only after replying. Workers
// share no memory with the dispatcher: they receive a closed set of request
// messages on their inbox and answer with reply messages.
//
// Compression never blocks a file: small files and unsupported formats are
// passed through without a dispatch, and decode/encode failures fall back to
// the original bytes with the failure attached to the Result.
package compress
