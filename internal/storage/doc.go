// Package storage provides the persistence collaborators for the plugin
// host: a JSON file-backed plugin store and UI/host state stores, plus
// in-memory variants for tests and embedding. The host core only sees the
// interfaces; last-write-wins is the sole durability guarantee.
package storage
