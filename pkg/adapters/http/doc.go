// Package http exposes automata and interactive sessions over a JSON REST API
// routed with chi.
package http
