// Package plugin is the plugin lifecycle core: it keeps the persisted
// library of plugin definitions, spawns definitions into live Lua processes
// with an injected capability bundle, renders them onto surfaces, and tears
// them down.
//
// The package guarantees at-most-one live process per plugin id, contains
// every failure raised by plugin code (spawn, render, destroy) as
// observable bookkeeping state instead of propagated errors, and keeps the
// in-memory library mirrored to its persistence collaborator after every
// mutation.
package plugin
