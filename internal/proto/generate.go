// Package proto holds the generated UploadService messages and stubs.
package proto

//go:generate protoc --proto_path=../../api --go_out=. --go_opt=paths=source_relative --go-grpc_out=. --go-grpc_opt=paths=source_relative mediaup.proto
