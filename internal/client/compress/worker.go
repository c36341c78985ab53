package compress

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"math"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"github.com/dmitrijs2005/mediaup/internal/common"
)

// keepRatio is the size threshold above which a re-encoded image is
// discarded in favour of the original.
const keepRatio = 0.95

type worker struct {
	id      int
	inbox   chan request
	replies chan<- reply
}

func (w *worker) run() {
	for msg := range w.inbox {
		switch m := msg.(type) {
		case stopRequest:
			return
		case compressRequest:
			res, err := w.process(m.job)
			if err != nil {
				w.replies <- compressFailed{id: m.id, worker: w.id, err: err}
				continue
			}
			w.replies <- compressDone{id: m.id, worker: w.id, result: res}
		}
	}
}

func (w *worker) process(job Job) (res Result, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("%w: worker panic: %v", common.ErrCompression, p)
		}
	}()

	src, _, err := image.Decode(bytes.NewReader(job.Data))
	if err != nil {
		return Result{}, fmt.Errorf("%w: decode: %w", common.ErrCompression, err)
	}

	b := src.Bounds()
	width, height := targetSize(b.Dx(), b.Dy(), job.Options.MaxWidth, job.Options.MaxHeight)

	img := src
	if width != b.Dx() || height != b.Dy() {
		dst := image.NewRGBA(image.Rect(0, 0, width, height))
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
		img = dst
	}

	out, mimeType, err := encode(img, job.MimeType, job.Options.Quality)
	if err != nil {
		return Result{}, fmt.Errorf("%w: encode: %w", common.ErrCompression, err)
	}

	original := int64(len(job.Data))
	if float64(len(out)) >= keepRatio*float64(original) {
		res := passthrough(job, nil)
		res.Width, res.Height = b.Dx(), b.Dy()
		return res, nil
	}

	return Result{
		Payload:        out,
		MimeType:       mimeType,
		Width:          width,
		Height:         height,
		OriginalSize:   original,
		CompressedSize: int64(len(out)),
		Ratio:          float64(len(out)) / float64(original),
	}, nil
}

// targetSize scales (w, h) into the (maxW, maxH) box preserving the aspect
// ratio. Images already inside the box are left alone.
func targetSize(w, h, maxW, maxH int) (int, int) {
	if w <= 0 || h <= 0 || maxW <= 0 || maxH <= 0 {
		return w, h
	}
	if w <= maxW && h <= maxH {
		return w, h
	}
	scale := math.Min(float64(maxW)/float64(w), float64(maxH)/float64(h))
	nw := int(math.Round(float64(w) * scale))
	nh := int(math.Round(float64(h) * scale))
	return max(nw, 1), max(nh, 1)
}

func encode(img image.Image, mimeType string, quality float64) ([]byte, string, error) {
	var buf bytes.Buffer

	if mimeType == MimePNG {
		enc := png.Encoder{CompressionLevel: png.BestCompression}
		if err := enc.Encode(&buf, img); err != nil {
			return nil, "", err
		}
		return buf.Bytes(), MimePNG, nil
	}

	q := int(math.Round(quality * 100))
	q = min(max(q, 1), 100)
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: q}); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), MimeJPEG, nil
}
