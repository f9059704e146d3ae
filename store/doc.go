// Package store implements the persistence gateway (§6 External
// Interfaces): the row-oriented boundary the engine rehydrates from on
// construction and flushes through on Commit. The default Gateway is
// backed by a pure-Go SQLite driver, with attribute values encoded as
// MessagePack so arbitrary Go values round-trip without a schema
// migration per attribute type.
package store
