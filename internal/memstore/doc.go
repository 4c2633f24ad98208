// Package memstore provides the in-memory implementation of the generic
// resource store. One Store instance owns one keyed collection for one
// entity type; the collection lives for the process lifetime and is
// never persisted.
package memstore
