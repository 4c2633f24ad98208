// Package httpapi maps HTTP verbs and paths onto the task store and
// validator and renders JSON. All engine semantics live behind the
// resource.Store and resource.Validator contracts; this layer only
// decides status codes and wire shapes.
package httpapi
