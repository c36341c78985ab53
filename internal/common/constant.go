// Package common contains shared constants and sentinel errors used across
// mediaup components.
package common

// AccessTokenHeaderName is the gRPC metadata key used to carry the
// access token on outbound requests.
const AccessTokenHeaderName = "access_token"

// Headers understood by the chunk-capable byte-transfer endpoint.
const (
	HeaderContentRange  = "Content-Range"
	HeaderChunkIndex    = "X-Chunk-Index"
	HeaderChunkChecksum = "X-Chunk-Checksum"
)
