// Package cli provides the interactive catalog command-line client.
//
// It wires configuration, the REST data service, the list engine and the
// entry forms into a REPL. The list is fetched once at start-up (and on
// "reload"); edits and deletes patch it in place.
//
// Key features:
//   - list / next / prev / page: paginated view, five entries per page
//   - search / sort: filter and order the list
//   - show: one entry with its image link
//   - add / edit / delete: create, update and two-step delete
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
