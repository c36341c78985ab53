// Package config loads runtime configuration for the mediaup client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON or YAML file selected with -c or -config. Files ending
//     in .yaml or .yml are read as YAML.
//  3. Command-line flags, which override earlier values.
//
// Arguments left after the flags are the paths to upload.
//
// # File schema
//
// Durations use timex.Duration, so they can be strings like "1s" or integer
// nanoseconds:
//
//	{
//	  "server_endpoint_addr": "127.0.0.1:50051",
//	  "access_token": "…",
//	  "data_dir": ".mediaup",
//	  "progress_interval": "1s",
//	  "compress_workers": 4,
//	  "jpeg_quality": 0.85,
//	  "chunk_size": 5242880,
//	  "confirm_batch_size": 50
//	}
package config
