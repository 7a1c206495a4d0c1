package host

// PluginID identifies the external caller that initiated a Core mutation.
// The original C ABI threads a pluginID through every entry point
// (group_manager.h/user_manager.h's *Callback typedefs all take one as
// their first argument); authority's Go API dropped the parameter because
// this module has no multi-plugin process boundary to disambiguate (see
// internal/events's doc comment). A host that embeds more than one plugin
// against a shared Core can use PluginID/EntryPoint to track who's calling
// without authority needing to know about it.
type PluginID uint64

// EntryPoint is the shape of a plugin the embedding host resolves a call
// into, mirroring the original C ABI's "the embedding host's plugin entry
// point" — a collaborator authority itself never needs to see.
type EntryPoint interface {
	ID() PluginID
	Name() string
}
