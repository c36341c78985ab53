// Package engine orchestrates the upload pipeline.
//
// Files added to an Engine move through three stage loops running
// concurrently: compression (worker pool), transfer (bounded by the adaptive
// concurrency limit, large payloads chunked and resumable) and confirmation
// (batched commits). Stages talk only through engine-owned queues guarded by
// one mutex; wake channels replace polling. A run ends, and Done is closed,
// once no stage has queued or active work.
//
// Task lifecycle:
//
//	queued -> compressing -> awaiting_destination -> uploading -> confirming -> completed
//
// with failed reachable from every working stage, paused/cancelled from any
// non-terminal state, and failed -> queued through RetryFailed.
package engine
