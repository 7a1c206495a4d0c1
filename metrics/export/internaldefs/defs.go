// Package internaldefs holds the metric name/help tables shared by the
// prometheus and otel exporters, so the two stay in sync with each other
// and with authority.MetricID.
package internaldefs

import (
	authority "github.com/ironforge/authority"
)

// CounterDef names one exported counter and the MetricID backing it.
type CounterDef struct {
	ID   authority.MetricID
	Name string
	Help string
}

// CounterDefs is every counter the exporters render, in rendering order.
var CounterDefs = []CounterDef{
	{ID: authority.MetricGroupCreated, Name: "authority_group_created_total", Help: "Groups created."},
	{ID: authority.MetricGroupDeleted, Name: "authority_group_deleted_total", Help: "Groups deleted."},
	{ID: authority.MetricGroupPermissionAdded, Name: "authority_group_permission_added_total", Help: "Permissions added to a group's own trie."},
	{ID: authority.MetricGroupPermissionRemoved, Name: "authority_group_permission_removed_total", Help: "Permissions removed from a group's own trie."},
	{ID: authority.MetricUserCreated, Name: "authority_user_created_total", Help: "Users created."},
	{ID: authority.MetricUserDeleted, Name: "authority_user_deleted_total", Help: "Users deleted."},
	{ID: authority.MetricPermissionGranted, Name: "authority_permission_granted_total", Help: "HasPermission checks resolved to Allow."},
	{ID: authority.MetricPermissionDenied, Name: "authority_permission_denied_total", Help: "HasPermission checks resolved to Disallow."},
	{ID: authority.MetricPermissionAdded, Name: "authority_permission_added_total", Help: "Permissions added directly to a user."},
	{ID: authority.MetricPermissionRemoved, Name: "authority_permission_removed_total", Help: "Permissions removed directly from a user."},
	{ID: authority.MetricPermissionExpired, Name: "authority_permission_expired_total", Help: "Temporary permissions expired by the timer wheel."},
	{ID: authority.MetricGroupExpired, Name: "authority_group_membership_expired_total", Help: "Temporary group memberships expired by the timer wheel."},
	{ID: authority.MetricCycleRejected, Name: "authority_cycle_rejected_total", Help: "SetParent calls rejected for creating a parent-chain cycle."},
	{ID: authority.MetricCallbackDropped, Name: "authority_callback_dropped_total", Help: "Load-event callbacks dropped under dispatcher backpressure."},
}
