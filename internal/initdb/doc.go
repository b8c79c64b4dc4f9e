// Package initdb wraps the engine's cluster-initialization primitive.
//
// The invocation is synchronous and all-or-nothing from the controller's
// perspective: on failure nothing is rolled back, and the operator is
// expected to remove the half-initialized directory before retrying.
package initdb
