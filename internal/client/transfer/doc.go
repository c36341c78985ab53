// Package transfer moves payload bytes to signed destinations.
//
// Small payloads go in one PUT (Uploader). Large payloads are split into
// fixed-size chunks sent in parallel batches, each chunk retried on its own,
// with the session persisted in a kv.Store after every chunk so that an
// interrupted upload can be resumed (ChunkedUploader).
package transfer
