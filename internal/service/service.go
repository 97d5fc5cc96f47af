// Package service contains the business logic.
//
// It sits between the handler and repository layers: it receives
// validated input from handlers, applies lookup policy (timeouts,
// error context), and reads through the repository-backed label store.
package service
