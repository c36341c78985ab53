package models

// Stats is the aggregate progress snapshot emitted on every state change.
type Stats struct {
	TotalFiles  int
	Queued      int
	Compressing int
	Uploading   int
	Confirming  int
	Completed   int
	Failed      int
	Paused      int
	Cancelled   int

	// TotalBytes counts the bytes that will be transferred: compressed size
	// once known, declared size before that.
	TotalBytes     int64
	UploadedBytes  int64
	BandwidthSaved int64

	SpeedMBps          float64
	ETASeconds         float64
	CurrentConcurrency int

	Running   bool
	IsPaused  bool
	LastError string
}

// Active is the number of tasks that still need work.
func (s Stats) Active() int {
	return s.Queued + s.Compressing + s.Uploading + s.Confirming + s.Paused
}
