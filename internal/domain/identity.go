package domain

import (
	"regexp"
	"strconv"
)

// Catalog urls end in /<digits>/, e.g. https://host/api/planets/1/
var (
	idPattern  = regexp.MustCompile(`/(\d+)/$`)
	refPattern = regexp.MustCompile(`/([a-z]+)/(\d+)/$`)
)

// Ref identifies one resource across the whole catalog.
type Ref struct {
	Kind Kind
	ID   int
}

// String renders the ref as "<kind>/<id>".
func (r Ref) String() string {
	return string(r.Kind) + "/" + strconv.Itoa(r.ID)
}

// ParseID returns the trailing numeric id of a resource url.
// ok is false for urls without a trailing /<digits>/ segment.
func ParseID(url string) (id int, ok bool) {
	m := idPattern.FindStringSubmatch(url)
	if m == nil {
		return 0, false
	}
	id, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return id, true
}

// ExtractID is ParseID with 0 standing in for "no id". The catalog never
// issues id 0, so callers that only display or navigate can use it directly.
func ExtractID(url string) int {
	id, _ := ParseID(url)
	return id
}

// ParseRef extracts both kind and id from a resource url.
func ParseRef(url string) (Ref, bool) {
	m := refPattern.FindStringSubmatch(url)
	if m == nil {
		return Ref{}, false
	}
	kind, err := ParseKind(m[1])
	if err != nil {
		return Ref{}, false
	}
	id, err := strconv.Atoi(m[2])
	if err != nil {
		return Ref{}, false
	}
	return Ref{Kind: kind, ID: id}, true
}

// RefOf returns the ref of a loaded resource.
func RefOf(r Resource) (Ref, bool) {
	id, ok := ParseID(r.ResourceURL())
	if !ok {
		return Ref{}, false
	}
	return Ref{Kind: r.Kind(), ID: id}, true
}

// SameEntity reports whether two resources are the same catalog entity.
func SameEntity(a, b Resource) bool {
	ra, okA := RefOf(a)
	rb, okB := RefOf(b)
	return okA && okB && ra == rb
}
