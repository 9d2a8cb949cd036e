/*
Package ports defines the driven ports (interfaces) of the Roster list feature.

These interfaces decouple the core transition function from its collaborators, allowing
identifier generation, the editor sub-machine and persistence to be substituted freely
(deterministic generators in tests, Redis or files in production).

# Key Interfaces

  - IDGenerator: Mints a fresh identifier for every add request.
  - Editor: The add-contact editor sub-machine, consumed only through its completion contract.
  - Reducer: The transition function itself, so hosts can wrap or replace it.
  - StateStore: Responsible for persisting and loading screen snapshots.
  - DistributedLocker: Provides distributed locking for handling concurrent session access.
*/
package ports
