// Package http implements the HTTP transport layer of the marketplace API.
// It provides middleware, route handlers, and request/response utilities for
// the REST surface. Identity verification, tracing, logging, and CORS concerns
// are all handled at this layer before requests reach the service layer.
package http
