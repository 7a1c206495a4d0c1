// Package redisprovider implements authority.StorageProvider against Redis:
// it persists group/user snapshots as JSON under a key prefix and replays
// them back into a *authority.Core on LoadUser/LoadGroups.
//
// # Design
//
// Each user or group snapshot lives under its own key, mutated through
// WATCH/MULTI optimistic transactions so concurrent writers (multiple
// processes sharing the same Redis) never lose an update to a race.
// Group names are additionally tracked in a Redis set so OnGroupsLoad can
// discover them without a KEYS scan.
//
// # Architecture boundaries
//
// This package owns Redis encoding and transactional writes. It does not
// decide when to persist — callers opt in by passing Attach a *Core, which
// subscribes the write-back handlers to the relevant mutation events.
//
// # What this package must NOT do
//
//   - Call back into authority's Core while holding a Redis transaction.
//   - Use KEYS in place of the group-name set for discovery.
package redisprovider
