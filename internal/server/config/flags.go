package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/mediaup/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   gRPC bind address (e.g., ":50051")
//	-d string   PostgreSQL DSN
//	-s string   JWT HMAC secret key
//	-t int      access token validity, minutes
//	-l int      presigned upload URL validity, seconds
//	-w int      confirm window, minutes
//	-m int      max file size, bytes
//	-k string   storage backend (s3 or minio)
//	-u string   S3 root user
//	-p string   S3 root password
//	-b string   S3 bucket name
//	-g string   S3 region
//	-e string   S3 base endpoint (e.g., "http://127.0.0.1:9000/")
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, so -c/-config and flags of other components pass through.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-s", "-t", "-l", "-w", "-m", "-k", "-u", "-p", "-b", "-g", "-e"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrGRPC, "a", config.EndpointAddrGRPC, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	accessTokenValidity := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "access token validity (in minutes)")
	uploadURLValidity := fs.Int("l", int(config.UploadURLValidity.Seconds()), "presigned upload URL validity (in seconds)")
	confirmWindow := fs.Int("w", int(config.ConfirmWindow.Minutes()), "confirm window (in minutes)")

	fs.Int64Var(&config.MaxFileSize, "m", config.MaxFileSize, "max file size in bytes, 0 disables the check")
	fs.StringVar(&config.StorageBackend, "k", config.StorageBackend, "storage backend: s3 or minio")
	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.AccessTokenValidityDuration = time.Duration(*accessTokenValidity) * time.Minute
	config.UploadURLValidity = time.Duration(*uploadURLValidity) * time.Second
	config.ConfirmWindow = time.Duration(*confirmWindow) * time.Minute
}
