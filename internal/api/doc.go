// Package api contains the HTTP handlers for the user CRUD surface,
// the transfer objects they exchange, and the error classifier that
// translates every failure into the uniform error payload.
package api
