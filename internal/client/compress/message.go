package compress

// Messages sent to a worker inbox.
type request interface{ isRequest() }

type compressRequest struct {
	id  uint64
	job Job
}

type stopRequest struct{}

func (compressRequest) isRequest() {}
func (stopRequest) isRequest()     {}

// Messages sent from a worker back to the dispatcher.
type reply interface {
	isReply()
	workerID() int
}

type compressDone struct {
	id     uint64
	worker int
	result Result
}

type compressFailed struct {
	id     uint64
	worker int
	err    error
}

func (compressDone) isReply()   {}
func (compressFailed) isReply() {}

func (m compressDone) workerID() int   { return m.worker }
func (m compressFailed) workerID() int { return m.worker }
