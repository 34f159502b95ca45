package domain

// Page is one paginated catalog response.
// Next is nil iff this is the last page.
type Page[T any] struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

// HasNext reports whether another page follows this one.
func (p Page[T]) HasNext() bool {
	return p.Next != nil
}

// Pagination mirrors the table widget's paging state.
type Pagination struct {
	Page        int
	RowsPerPage int
	RowsNumber  int // total rows available upstream
}

// PageCount returns the number of pages needed for RowsNumber rows.
func (p Pagination) PageCount() int {
	if p.RowsPerPage <= 0 || p.RowsNumber <= 0 {
		return 1
	}
	return (p.RowsNumber + p.RowsPerPage - 1) / p.RowsPerPage
}

// TablePagination is the paging/sorting state a table view sends on request.
type TablePagination struct {
	SortBy      string
	Descending  bool
	Page        int
	RowsPerPage int
}

// TableRequest is emitted by table views when the user pages or filters.
type TableRequest struct {
	Pagination TablePagination
	Filter     string
}
