// Package client contains the client-side connection to the mediaup
// companion server.
//
// # Overview
//
// The package provides:
//  1. GRPCClient, the UploadService client. It satisfies models.Issuer and
//     models.Confirmer so the engine can use it directly, injects the access
//     token through a unary interceptor, and maps gRPC status codes to
//     sentinel errors.
//  2. Local persistence bootstrap (InitDatabase, RunMigrations) wiring the
//     SQLite chunk-session store and applying embedded goose migrations.
//
// # Error Handling
//
// Transport conditions are exposed as sentinel errors matched with
// errors.Is: ErrUnavailable, ErrUnauthorized. Confirm failures additionally
// wrap common.ErrConfirm.
package client
