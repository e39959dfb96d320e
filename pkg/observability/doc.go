/*
Package observability binds Prometheus collectors to the engine's lifecycle
hooks, counting transitions, undefined transitions and whole-word runs.
*/
package observability
