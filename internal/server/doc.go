// Package server wires and runs the vault's transport servers.
//
// It runs the HTTP API and the gRPC health endpoint side by side and shuts
// both down gracefully when the run context is cancelled or either server
// fails.
package server
