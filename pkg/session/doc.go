/*
Package session implements interactive runs: a word is consumed one symbol per
call, and the run snapshot is persisted between calls.

Access to a session is serialised by a per-ID mutex that is garbage collected
by reference counting, and optionally by a ports.DistributedLocker when several
replicas share the same store.
*/
package session
