// Package validation binds and validates request data.
//
// It uses go-playground/validator tags for field rules and converts
// failures into the errs.HTTPError envelope clients understand.
package validation
