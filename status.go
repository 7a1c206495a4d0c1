package authority

import "github.com/ironforge/authority/status"

// Status is the closed result enumeration every Core operation returns.
// It is a type alias onto the standalone status package, which exists as
// its own leaf
// package so that internal/events (which the root package imports) can
// reference Status without creating an import cycle.
type Status = status.Status

const (
	Success              = status.Success
	Allow                = status.Allow
	Disallow             = status.Disallow
	PermNotFound         = status.PermNotFound
	CookieNotFound       = status.CookieNotFound
	GroupNotFound        = status.GroupNotFound
	ChildGroupNotFound   = status.ChildGroupNotFound
	ParentGroupNotFound  = status.ParentGroupNotFound
	ActorUserNotFound    = status.ActorUserNotFound
	TargetUserNotFound   = status.TargetUserNotFound
	GroupAlreadyExist    = status.GroupAlreadyExist
	UserAlreadyExist     = status.UserAlreadyExist
	CallbackAlreadyExist = status.CallbackAlreadyExist
	CallbackNotFound     = status.CallbackNotFound
	PermAlreadyGranted   = status.PermAlreadyGranted
	TemporalGroup        = status.TemporalGroup
	PermanentGroup       = status.PermanentGroup
	GroupNotDefined      = status.GroupNotDefined
)
