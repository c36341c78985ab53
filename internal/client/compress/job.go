package compress

// Supported raster formats. WebP input is re-encoded as JPEG.
const (
	MimeJPEG = "image/jpeg"
	MimePNG  = "image/png"
	MimeWebP = "image/webp"
)

// Options bounds the output image.
type Options struct {
	MaxWidth  int
	MaxHeight int
	// Quality in (0, 1], mapped to JPEG quality 1..100.
	Quality float64
}

// DefaultOptions are the pipeline defaults: 4096px box, quality 0.85.
func DefaultOptions() Options {
	return Options{MaxWidth: 4096, MaxHeight: 4096, Quality: 0.85}
}

// Job is one compression request.
type Job struct {
	Data     []byte
	MimeType string
	Options  Options
}

// Result is the outcome of one job. When the original bytes are passed
// through, Payload aliases Job.Data and Ratio is 1.
type Result struct {
	Payload        []byte
	MimeType       string
	Width          int
	Height         int
	OriginalSize   int64
	CompressedSize int64
	Ratio          float64
	// Skipped is set when the job never reached a worker.
	Skipped bool
	// Err carries a non-fatal compression failure (wraps common.ErrCompression).
	Err error
}

// Saved is the number of bytes compression removed.
func (r Result) Saved() int64 {
	return r.OriginalSize - r.CompressedSize
}

// Supported reports whether mimeType is a raster format the workers can re-encode.
func Supported(mimeType string) bool {
	switch mimeType {
	case MimeJPEG, MimePNG, MimeWebP:
		return true
	}
	return false
}

func passthrough(job Job, err error) Result {
	size := int64(len(job.Data))
	return Result{
		Payload:        job.Data,
		MimeType:       job.MimeType,
		OriginalSize:   size,
		CompressedSize: size,
		Ratio:          1,
		Err:            err,
	}
}
