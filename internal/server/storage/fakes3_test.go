package storage

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"
)

// fakeS3 is a path-style, single-bucket S3 endpoint: plain PUT, HEAD and
// the multipart calls. Signatures are not checked.
type fakeS3 struct {
	bucket string

	mu        sync.Mutex
	objects   map[string][]byte
	uploads   map[string]map[int][]byte
	nextID    int
	completed []int
	aborted   int
}

func newFakeS3(t *testing.T, bucket string) (*fakeS3, *httptest.Server) {
	f := &fakeS3{
		bucket:  bucket,
		objects: map[string][]byte{},
		uploads: map[string]map[int][]byte{},
	}
	ts := httptest.NewServer(f)
	t.Cleanup(ts.Close)
	return f, ts
}

func etagOf(b []byte) string {
	sum := md5.Sum(b)
	return `"` + hex.EncodeToString(sum[:]) + `"`
}

type completeBody struct {
	Parts []struct {
		ETag       string `xml:"ETag"`
		PartNumber int    `xml:"PartNumber"`
	} `xml:"Part"`
}

func (f *fakeS3) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	key, ok := strings.CutPrefix(r.URL.Path, "/"+f.bucket+"/")
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	q := r.URL.Query()
	body, _ := io.ReadAll(r.Body)

	f.mu.Lock()
	defer f.mu.Unlock()

	w.Header().Set("Content-Type", "application/xml")
	switch {
	case r.Method == http.MethodPost && q.Has("uploads"):
		f.nextID++
		id := fmt.Sprintf("upload-%d", f.nextID)
		f.uploads[id] = map[int][]byte{}
		fmt.Fprintf(w, `<?xml version="1.0" encoding="UTF-8"?>`+
			`<InitiateMultipartUploadResult xmlns="http://s3.amazonaws.com/doc/2006-03-01/">`+
			`<Bucket>%s</Bucket><Key>%s</Key><UploadId>%s</UploadId></InitiateMultipartUploadResult>`, f.bucket, key, id)

	case r.Method == http.MethodPut && q.Get("uploadId") != "":
		parts, ok := f.uploads[q.Get("uploadId")]
		if !ok {
			f.noSuchUpload(w)
			return
		}
		n, _ := strconv.Atoi(q.Get("partNumber"))
		parts[n] = body
		w.Header().Set("ETag", etagOf(body))
		w.WriteHeader(http.StatusOK)

	case r.Method == http.MethodPost && q.Get("uploadId") != "":
		id := q.Get("uploadId")
		parts, ok := f.uploads[id]
		if !ok {
			f.noSuchUpload(w)
			return
		}
		var req completeBody
		if err := xml.Unmarshal(body, &req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		var data []byte
		numbers := make([]int, 0, len(req.Parts))
		for _, p := range req.Parts {
			b, ok := parts[p.PartNumber]
			if !ok || etagOf(b) != p.ETag {
				w.WriteHeader(http.StatusBadRequest)
				fmt.Fprint(w, `<Error><Code>InvalidPart</Code><Message>bad part</Message></Error>`)
				return
			}
			data = append(data, b...)
			numbers = append(numbers, p.PartNumber)
		}
		if !sort.IntsAreSorted(numbers) {
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprint(w, `<Error><Code>InvalidPartOrder</Code><Message>order</Message></Error>`)
			return
		}
		f.objects[key] = data
		f.completed = append(f.completed, len(numbers))
		delete(f.uploads, id)
		fmt.Fprintf(w, `<?xml version="1.0" encoding="UTF-8"?>`+
			`<CompleteMultipartUploadResult><Location>/%s/%s</Location><Bucket>%s</Bucket><Key>%s</Key><ETag>"done"</ETag></CompleteMultipartUploadResult>`,
			f.bucket, key, f.bucket, key)

	case r.Method == http.MethodDelete && q.Get("uploadId") != "":
		delete(f.uploads, q.Get("uploadId"))
		f.aborted++
		w.WriteHeader(http.StatusNoContent)

	case r.Method == http.MethodPut:
		f.objects[key] = body
		w.Header().Set("ETag", etagOf(body))
		w.WriteHeader(http.StatusOK)

	case r.Method == http.MethodHead:
		b, ok := f.objects[key]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Length", strconv.Itoa(len(b)))
		w.Header().Set("ETag", etagOf(b))
		w.Header().Set("Last-Modified", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC).Format(http.TimeFormat))
		w.Header().Set("Content-Type", "application/octet-stream")
		w.WriteHeader(http.StatusOK)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (f *fakeS3) noSuchUpload(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNotFound)
	fmt.Fprint(w, `<Error><Code>NoSuchUpload</Code><Message>no such upload</Message></Error>`)
}

func (f *fakeS3) object(key string) []byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.objects[key]
}

func (f *fakeS3) openUploads() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.uploads)
}
