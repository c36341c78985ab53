// Package kv is the durable local key-value store used to persist chunked
// upload sessions between runs.
//
// Records are always overwritten wholesale by key. Get returns (nil, nil)
// for a missing key.
//
// Implementations:
//   - SQLiteRepository: table chunk_sessions created by the embedded goose
//     migrations (see client.InitDatabase).
//   - MemoryRepository: process-local map, used when persistence is off and
//     in tests.
package kv
