package config

import (
	"github.com/dmitrijs2005/mediaup/internal/flagx"
	"github.com/dmitrijs2005/mediaup/internal/timex"
)

// FileConfig is the DTO decoded from a JSON or YAML config file. Durations
// use timex.Duration, so both "1m" strings and integer nanoseconds work.
// Zero values leave the current setting untouched.
type FileConfig struct {
	EndpointAddrGRPC            string         `json:"endpoint_addr_grpc" yaml:"endpoint_addr_grpc"`
	DatabaseDSN                 string         `json:"database_dsn" yaml:"database_dsn"`
	SecretKey                   string         `json:"secret_key" yaml:"secret_key"`
	AccessTokenValidityDuration timex.Duration `json:"access_token_validity_duration" yaml:"access_token_validity_duration"`
	UploadURLValidity           timex.Duration `json:"upload_url_validity" yaml:"upload_url_validity"`
	ConfirmWindow               timex.Duration `json:"confirm_window" yaml:"confirm_window"`
	MaxFileSize                 int64          `json:"max_file_size" yaml:"max_file_size"`
	StorageBackend              string         `json:"storage_backend" yaml:"storage_backend"`
	S3RootUser                  string         `json:"s3_root_user" yaml:"s3_root_user"`
	S3RootPassword              string         `json:"s3_root_password" yaml:"s3_root_password"`
	S3Bucket                    string         `json:"s3_bucket" yaml:"s3_bucket"`
	S3Region                    string         `json:"s3_region" yaml:"s3_region"`
	S3BaseEndpoint              string         `json:"s3_base_endpoint" yaml:"s3_base_endpoint"`
}

// parseFile loads the file named by -c/-config into config. The format is
// picked from the extension. It panics when the file cannot be read or
// decoded.
func parseFile(config *Config) {
	path := flagx.ConfigFileFlag()

	// nothing to load
	if path == "" {
		return
	}

	c := &FileConfig{}
	if err := flagx.DecodeConfigFile(path, c); err != nil {
		panic(err)
	}

	setString(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	if c.AccessTokenValidityDuration.Duration > 0 {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	if c.UploadURLValidity.Duration > 0 {
		config.UploadURLValidity = c.UploadURLValidity.Duration
	}
	if c.ConfirmWindow.Duration > 0 {
		config.ConfirmWindow = c.ConfirmWindow.Duration
	}
	if c.MaxFileSize > 0 {
		config.MaxFileSize = c.MaxFileSize
	}
	setString(&config.StorageBackend, c.StorageBackend)
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
