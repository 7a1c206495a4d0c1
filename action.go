package authority

import "github.com/ironforge/authority/internal/events"

// Action distinguishes an add from a remove in dispatched events. It is a
// type alias so callers registering callbacks through the internal/events
// function types and callers using the public Core API are looking at the
// same type.
type Action = events.Action

const (
	Add    = events.Add
	Remove = events.Remove
)
