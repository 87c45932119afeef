// Package http implements the REST transport of the inventory server.
//
// It wires the chi router, the request handlers and the middleware chain.
// Request tracing, access logging and bearer-token authentication run here
// before a request reaches the service layer; every protected handler reads
// the caller's identity from the request context and passes its account id
// to the services as the owner.
package http
