package models

import "time"

// Status is the lifecycle state of one file in the pipeline.
type Status string

const (
	StatusQueued              Status = "queued"
	StatusCompressing         Status = "compressing"
	StatusAwaitingDestination Status = "awaiting_destination"
	StatusUploading           Status = "uploading"
	StatusConfirming          Status = "confirming"
	StatusCompleted           Status = "completed"
	StatusFailed              Status = "failed"
	StatusPaused              Status = "paused"
	StatusCancelled           Status = "cancelled"
)

var stageOrder = map[Status]int{
	StatusQueued:              0,
	StatusCompressing:         1,
	StatusAwaitingDestination: 2,
	StatusUploading:           3,
	StatusConfirming:          4,
	StatusCompleted:           5,
}

// Terminal reports whether no further automatic transition is possible.
// Failed tasks can still be brought back with an explicit retry.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed || s == StatusCancelled
}

// CanTransition reports whether moving from s to next is allowed.
//
// Forward moves along the stage order are allowed (stages may be skipped, a
// resumed chunk session jumps straight to uploading). Failed is reachable from
// compressing, awaiting_destination, uploading and confirming. Any
// non-terminal state may be cancelled or paused. Queued is re-entered only
// from failed (retry) and paused (resume).
func (s Status) CanTransition(next Status) bool {
	switch next {
	case StatusCancelled:
		return !s.Terminal()
	case StatusPaused:
		return !s.Terminal() && s != StatusPaused
	case StatusFailed:
		return s == StatusCompressing || s == StatusAwaitingDestination ||
			s == StatusUploading || s == StatusConfirming
	case StatusQueued:
		return s == StatusFailed || s == StatusPaused
	}

	if s == StatusPaused || s == StatusQueued {
		_, ok := stageOrder[next]
		return ok && next != StatusQueued
	}

	from, ok := stageOrder[s]
	if !ok {
		return false
	}
	to, ok := stageOrder[next]
	return ok && to > from
}

// TaskSnapshot is a read-only copy of a task handed to observers.
type TaskSnapshot struct {
	ID               string
	Name             string
	MimeType         string
	Status           Status
	Progress         float64
	OriginalSize     int64
	CompressedSize   int64
	CompressionRatio float64
	StoragePath      string
	Chunked          bool
	Retries          int
	Error            string
	UpdatedAt        time.Time
}
