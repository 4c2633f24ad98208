// Package board defines the Task entity, its declared field schema, and
// its business validator.
package board
