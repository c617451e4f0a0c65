// Package client is the remote transport of the sync engine.
//
// Transport is the contract the orchestrator consumes: Push, Pull, Ping.
// GRPCClient implements it over the entrysync.v1.SyncService gRPC service,
// attaching the access token through a unary interceptor and mapping gRPC
// status codes to sentinel errors:
//
//   - Unauthenticated, PermissionDenied → ErrUnauthorized
//   - Unavailable, DeadlineExceeded, Internal, Unknown, ResourceExhausted, Aborted → ErrUnavailable
//   - FailedPrecondition → ErrSchemaMismatch
//
// Push and Pull each run under their own timeout; exceeding it surfaces as
// ErrUnavailable.
package client
