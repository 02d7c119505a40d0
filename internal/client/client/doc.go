// Package client contains the transport layer of the profilespaces client.
//
// # Overview
//
// The package provides:
//  1. The Client interface: one typed method per API endpoint (login, signup,
//     session, profile, availability, photo, password, email,
//     notifications, account deletion and password reset).
//  2. HTTPClient, the REST/JSON implementation. Request and Upload send the
//     API key, the Authorization token and a per-request X-Request-ID.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) wiring the
//     SQLite database and applying embedded goose migrations.
//
// # Error Handling
//
// Every failed call returns *Error. Network failures have Network set and
// match ErrUnavailable with errors.Is; 401 responses match ErrUnauthorized.
// FieldErrors and Detail pull the server error envelope out of an error.
package client
