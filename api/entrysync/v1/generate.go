// Package entrysyncv1 holds the generated entrysync.v1 protobuf messages and
// the SyncService gRPC stubs shared by the client transport and the server.
package entrysyncv1

//go:generate protoc -I ../.. --go_out=../.. --go_opt=paths=source_relative --go-grpc_out=../.. --go-grpc_opt=paths=source_relative entrysync/v1/sync.proto
