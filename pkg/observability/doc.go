/*
Package observability turns store lifecycle events into logs and Prometheus metrics.

Metrics.Hooks and LogHooks both return domain.LifecycleHooks; Merge combines them
so a host can register several observers on one store.
*/
package observability
