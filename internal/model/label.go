// Package model holds the plain data types shared between the handler,
// service, repository, and job layers.
package model

// LabelInformation is a label record resolved from its pretty URL name.
//
// Example:
//
//	{ "prettyUrlName": "basic-science", "idString": "basic_science", "label": "Basic Science" }
type LabelInformation struct {
	// PrettyUrlName is the URL-safe slug used to look the label up.
	PrettyUrlName string `json:"prettyUrlName" validate:"required"`

	// IdString is the internal identifier of the labelled category.
	IdString string `json:"idString" validate:"required"`

	// Label is the display text.
	Label string `json:"label" validate:"required"`
}
