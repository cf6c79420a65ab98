// Package api is the HTTP transport over a node: request parsing, routing
// and response shaping for the five node operations plus a liveness probe.
// It holds no ledger logic of its own; every route delegates to the node
// package and maps its results onto status codes and JSON bodies.
package api
