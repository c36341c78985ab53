// Package storage signs PUT and multipart part URLs against S3 or MinIO,
// completes multipart uploads, and builds the object keys uploads are
// stored under.
package storage
