package domain

// Resource is the polymorphic interface for catalog entities.
// It gives the store, the relation resolver and the views one API for
// identity, display and filtering across all resource types.
type Resource interface {
	// ResourceURL returns the canonical url, which carries the id
	ResourceURL() string

	// Kind returns the resource type
	Kind() Kind

	// DisplayName returns the primary label (title for films, name otherwise)
	DisplayName() string

	// SearchFields returns the values matched by local text filters
	SearchFields() []string

	// Fields returns ordered label/value pairs for detail views
	Fields() []Field

	// Relations returns the url lists pointing at other resource types
	Relations() []Relation

	// Links returns single-url references (e.g. a person's homeworld)
	Links() []Link
}

// Field is one labelled scalar of a resource.
type Field struct {
	Label string
	Value string
}

// Relation is a named list of references to resources of one other kind.
type Relation struct {
	Name   string
	Target Kind
	URLs   []string
}

// Link is a named reference to a single resource.
type Link struct {
	Name string
	URL  string
}
