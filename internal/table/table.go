// Package table coordinates the reactive state behind a tabular record
// view: the record stream, column definitions, row selection, single-column
// sorting, pagination, and bulk-action execution. Each piece of state lives
// in exactly one observable cell owned by the Model; consumers subscribe to
// the cells and request transitions through the Model's operations, never by
// mutating state directly.
package table

import (
	"github.com/ravenfield/recview/internal/field"
	"github.com/ravenfield/recview/internal/observe"
)

// Column describes one column of the tabular view. Cells of the column are
// rendered by dispatching on Type.
type Column struct {
	Name     string
	Type     field.Type
	Width    string
	Label    string
	Link     bool
	Default  bool
	Sortable bool

	// Definition is passed through to the fields instantiated for this
	// column (options list, relate target).
	Definition field.Definition
}

// SelectionStatus summarizes the row selection.
type SelectionStatus string

const (
	SelectionNone SelectionStatus = "NONE"
	SelectionSome SelectionStatus = "SOME"
	SelectionAll  SelectionStatus = "ALL"
)

// Selection is the current set of selected record ids plus its derived
// summary. Count always equals the number of true entries in Selected and
// Status is derived from Count against the total record count; both are
// recomputed from the map on every transition.
type Selection struct {
	All      bool
	Status   SelectionStatus
	Selected map[string]bool
	Count    int
}

// SortDirection orders a sorted column.
type SortDirection string

const (
	SortAsc  SortDirection = "ASC"
	SortDesc SortDirection = "DESC"
)

// Sorting is the single active sort. A zero OrderBy means unsorted.
type Sorting struct {
	OrderBy   string
	Direction SortDirection
}

// Pagination is the visible-range bookkeeping of the paged record set.
// Invariant: 0 <= PageFirst <= PageLast <= Total.
type Pagination struct {
	PageFirst int
	PageLast  int
	Total     int
}

// PageDirection selects the target of a page change.
type PageDirection string

const (
	PageFirst    PageDirection = "first"
	PagePrevious PageDirection = "previous"
	PageNext     PageDirection = "next"
	PageLast     PageDirection = "last"
)

// BulkAction names an operation applicable to the current selection.
type BulkAction struct {
	Key      string
	LabelKey string
	Params   map[string]string
	ACL      []string
}

// Page is one emission of a record source: the visible window plus the
// total count of the underlying result set.
type Page struct {
	Records []field.Record
	Total   int
}

// Query is the demand the model pushes down to its record source.
type Query struct {
	OrderBy   string
	Direction SortDirection
	Offset    int
	Limit     int
	Criteria  map[string]field.Criteria
}

// RecordSource supplies the record stream. Connect is demand-driven and
// restartable; Disconnect must release whatever the connection retained.
// SetQuery re-emits on the connected cell. IDs returns the ids of the whole
// result set under q's sort and criteria, ignoring the page window, so
// select-all covers records on every page.
type RecordSource interface {
	Connect(q Query) (*observe.Cell[Page], error)
	Disconnect()
	SetQuery(q Query) error
	IDs(q Query) ([]string, error)
}

// AccessPolicy decides whether the caller is entitled to an action's
// access-control tags. Implemented by the surrounding application.
type AccessPolicy interface {
	Allowed(acl []string) bool
}

// AllowAll is the policy used when no policy is supplied.
type AllowAll struct{}

func (AllowAll) Allowed([]string) bool { return true }

// ActionExecutor performs a bulk action against a snapshot of selected ids.
// Execution is fire-and-forget from the model's perspective; the outcome is
// reported to the caller of ExecuteBulkAction and partial selection state is
// never rolled back.
type ActionExecutor interface {
	Execute(key string, ids []string, params map[string]string) error
}
