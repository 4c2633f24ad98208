// Package resource defines the generic record framework: the Entity base
// type, declared field schemas, schema validation, partial updates, the
// batch-get collection envelope, and the Store and Validator contracts
// that concrete entities build on.
package resource
