// Package authority implements a hierarchical group/user permission engine:
// a trie-based permission trie per group and per user, group inheritance
// through a parent chain, temporary grants and memberships that expire on a
// shared timer wheel, and a typed callback registry for observing every
// mutation.
//
// The package is designed for concurrent server workloads: Core methods are
// safe to call from multiple goroutines after construction through
// [Builder.Build].
//
// # Architecture boundaries
//
// authority is the public surface. It exposes [Core], [Builder], [Config],
// and value types ([Status], [Action], [PermType], [MetricsSnapshot]).
// Trie mechanics live in fingerprint/ and node/; group and user aggregates
// live in group/ and user/; the timer wheel lives in timer/; the callback
// vocabulary lives in internal/events/ and is never exported directly —
// Core re-exports the event function types it needs through its own API.
//
// # What this package must NOT do
//
//   - Expose *node.Node, *group.Group, or *user.User from any Core method;
//     every public operation returns a [Status] (and sometimes a plain
//     value), never the internal aggregate.
//   - Perform I/O. Persistence is the embedder's responsibility through a
//     [StorageProvider] subscribed to the LoadUser/LoadGroups events.
//   - Import any sub-package that re-imports authority (no import cycles).
//
// # Concurrency contract
//
// groupsMu and usersMu are acquired in that order whenever both are needed.
// HasPermission and the other user-side readers take only
// usersMu; AddPermissionGroup, RemovePermissionGroup, SetCookieGroup, and
// DeleteGroup additionally take usersMu because they can change a verdict
// HasPermission would otherwise read without synchronization.
package authority
