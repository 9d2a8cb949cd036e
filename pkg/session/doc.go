/*
Package session hosts many list screens side by side, one per session id.

The Manager keeps a live roster.Store for every open session and serialises
dispatch per session with a reference-counted local lock. When several replicas
share one state store, an optional DistributedLocker extends that guarantee
across processes and each dispatch refreshes the snapshot before applying.
*/
package session
