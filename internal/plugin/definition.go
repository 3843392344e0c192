package plugin

import "time"

// Definition is the persisted, inert description of a plugin. It contains
// only value fields, so an ordinary copy is a deep copy; the library relies
// on this to hand out snapshots that cannot alias its internal state.
type Definition struct {
	// ID is an opaque unique identity token.
	ID string `json:"id"`

	// Name is the display name shown in the library UI.
	Name string `json:"name"`

	// Source is the plugin's Lua source text.
	Source string `json:"source"`

	// Enabled marks whether the host should spawn the plugin.
	Enabled bool `json:"enabled"`

	// EditedAt is the time of the last structural edit.
	EditedAt time.Time `json:"editedAt"`
}
