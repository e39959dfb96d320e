/*
Package ports defines the driven ports (interfaces) of the automata engine.

These interfaces decouple the engine from external implementations, allowing
it to work with various definition sources and run stores.

# Key Interfaces

  - DefinitionLoader: Resolves automaton definitions by ID (e.g., from Loam, a file or memory).
  - RunStore: Persists interactive stepping runs.
  - DistributedLocker: Provides distributed locking for concurrent session access.
*/
package ports
