package authority

import "github.com/ironforge/authority/user"

// PermType identifies which layer of a User's permission sources produced
// a HasPermission verdict.
type PermType = user.PermType

const (
	TempUserPerm   = user.TempUserPerm
	DirectUserPerm = user.DirectUserPerm
	TempGroupPerm  = user.TempGroupPerm
	PermGroupPerm  = user.PermGroupPerm
	NonePerm       = user.NonePerm
)
