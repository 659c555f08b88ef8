// Package api handles incoming HTTP requests for the authentication and task
// endpoints: request decoding, validation, and response formatting. It acts as
// an adapter between external clients and the internal application services,
// translating HTTP concerns to business operations. Routes are mounted by
// cmd/server.
package api
