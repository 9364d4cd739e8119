// Package hiveserver2 is a client for HiveServer2-compatible query services
// (HiveServer2 itself and Impala), exposed through the older synchronous
// query engine API that predates the protocol.
//
// The package owns session lifecycle, including transparent renewal when the
// server reports a session handle invalid, statement execution in both
// synchronous and asynchronous modes, result paging, operation status
// polling and catalog browsing. The RPC transport itself lives behind the
// tcliservice.CLIService stub interface and is supplied by the caller.
package hiveserver2
