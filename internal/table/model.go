package table

import (
	"errors"
	"fmt"
	"sort"

	"github.com/agnivade/levenshtein"

	"github.com/ravenfield/recview/internal/field"
	"github.com/ravenfield/recview/internal/observe"
)

// ErrUnknownAction reports an ExecuteBulkAction key with no registered
// action. The wrapping error may carry a nearest-key suggestion.
var ErrUnknownAction = errors.New("unknown bulk action")

// Options configures a Model.
type Options struct {
	Source   RecordSource
	Policy   AccessPolicy // nil means AllowAll
	Executor ActionExecutor
	Columns  []Column
	Actions  []BulkAction
	PageSize int
}

// Model owns the reactive state of one tabular view. It is single-threaded
// like the rest of the core: all operations are expected to run on the
// owning loop.
//
// Page-change policy: changing page preserves the current selection. The
// selected-id set refers to the whole result set, not the visible window;
// only ClearSelection (or a caller reacting to a completed bulk action)
// empties it.
type Model struct {
	source   RecordSource
	policy   AccessPolicy
	executor ActionExecutor
	pageSize int

	records    *observe.Cell[[]field.Record]
	columns    *observe.Cell[[]Column]
	maxColumns *observe.Cell[int]
	visible    *observe.Cell[[]Column]
	selection  *observe.Cell[Selection]
	sorting    *observe.Cell[Sorting]
	pagination *observe.Cell[Pagination]
	actions    *observe.Cell[map[string]BulkAction]

	allActions map[string]BulkAction
	criteria   map[string]field.Criteria
	offset     int

	connected    bool
	clamping     bool
	cancelSource func()
	cancelCols   func()
}

// New builds a disconnected model. Call Connect to start the record stream.
func New(opts Options) *Model {
	if opts.Policy == nil {
		opts.Policy = AllowAll{}
	}
	if opts.PageSize <= 0 {
		opts.PageSize = 20
	}

	m := &Model{
		source:     opts.Source,
		policy:     opts.Policy,
		executor:   opts.Executor,
		pageSize:   opts.PageSize,
		records:    observe.NewCell[[]field.Record](nil),
		columns:    observe.NewCell(opts.Columns),
		maxColumns: observe.NewCell(len(opts.Columns)),
		selection:  observe.NewCell(emptySelection()),
		sorting:    observe.NewCell(Sorting{}),
		pagination: observe.NewCell(Pagination{}),
		allActions: map[string]BulkAction{},
		criteria:   map[string]field.Criteria{},
	}

	for _, a := range opts.Actions {
		m.allActions[a.Key] = a
	}
	m.actions = observe.NewCell(m.entitledActions())

	m.visible, m.cancelCols = observe.Combine(m.columns, m.maxColumns, capColumns)
	return m
}

func emptySelection() Selection {
	return Selection{Status: SelectionNone, Selected: map[string]bool{}}
}

// Records exposes the current page of records.
func (m *Model) Records() *observe.Cell[[]field.Record] { return m.records }

// Columns exposes the visible column definitions: the configured columns
// capped by MaxColumns, non-default columns dropped first.
func (m *Model) Columns() *observe.Cell[[]Column] { return m.visible }

// Selection, Sorting and Pagination expose the owned state cells. Callers
// must treat the values as read-only snapshots.
func (m *Model) Selection() *observe.Cell[Selection]   { return m.selection }
func (m *Model) Sorting() *observe.Cell[Sorting]       { return m.sorting }
func (m *Model) Pagination() *observe.Cell[Pagination] { return m.pagination }

// BulkActions exposes the actions the caller is entitled to.
func (m *Model) BulkActions() *observe.Cell[map[string]BulkAction] { return m.actions }

// SetMaxColumns caps the visible column count, typically from the viewport
// width. Default columns are never dropped.
func (m *Model) SetMaxColumns(n int) { m.maxColumns.Set(n) }

// capColumns keeps at most max columns, preferring default ones: non-default
// columns are dropped from the right first, then the relative order of the
// survivors is preserved.
func capColumns(cols []Column, max int) []Column {
	if max < 0 {
		max = 0
	}
	if len(cols) <= max {
		return cols
	}
	drop := len(cols) - max
	keep := make([]Column, 0, max)
	for i := len(cols) - 1; i >= 0; i-- {
		if drop > 0 && !cols[i].Default {
			drop--
			continue
		}
		keep = append(keep, cols[i])
	}
	// keep was built right-to-left
	for i, j := 0, len(keep)-1; i < j; i, j = i+1, j-1 {
		keep[i], keep[j] = keep[j], keep[i]
	}
	return keep
}

// Connect starts the record stream with the current query. Reconnecting
// after a Disconnect restarts from the same sort/page/criteria state.
func (m *Model) Connect() error {
	if m.connected {
		return nil
	}
	pages, err := m.source.Connect(m.query())
	if err != nil {
		return fmt.Errorf("connect record source: %w", err)
	}
	m.cancelSource = pages.Subscribe(func(p Page) {
		m.records.Set(p.Records)
		m.publishPagination(p.Total)
	})
	m.connected = true
	return nil
}

// Disconnect releases the record subscription and its resources. Owned
// state (selection, sorting, pagination) survives for a later reconnect.
func (m *Model) Disconnect() {
	if !m.connected {
		return
	}
	m.cancelSource()
	m.cancelSource = nil
	m.source.Disconnect()
	m.connected = false
}

// Close disconnects and detaches internal derivations.
func (m *Model) Close() {
	m.Disconnect()
	m.cancelCols()
}

func (m *Model) query() Query {
	s := m.sorting.Get()
	criteria := make(map[string]field.Criteria, len(m.criteria))
	for k, v := range m.criteria {
		criteria[k] = v
	}
	return Query{
		OrderBy:   s.OrderBy,
		Direction: s.Direction,
		Offset:    m.offset,
		Limit:     m.pageSize,
		Criteria:  criteria,
	}
}

func (m *Model) pushQuery() error {
	if !m.connected {
		return nil
	}
	return m.source.SetQuery(m.query())
}

// publishPagination recomputes the visible range from offset/total and
// clamps it to the invariant 0 <= PageFirst <= PageLast <= Total. When the
// clamp moves the offset (the result set shrank below the current window),
// the corrected query is re-pushed so the records cell catches up to the
// window pagination advertises; the re-emission runs this method again with
// a consistent offset, so the stale snapshot is never published.
func (m *Model) publishPagination(total int) {
	if total < 0 {
		total = 0
	}
	if m.offset >= total {
		clamped := lastPageOffset(total, m.pageSize)
		moved := clamped != m.offset
		m.offset = clamped
		if moved && m.connected && !m.clamping {
			m.clamping = true
			err := m.pushQuery()
			m.clamping = false
			if err == nil {
				return
			}
		}
	}
	p := Pagination{Total: total}
	if total > 0 {
		p.PageFirst = m.offset + 1
		p.PageLast = m.offset + m.pageSize
		if p.PageLast > total {
			p.PageLast = total
		}
	}
	m.pagination.Set(p)
	// The effective total changed, so the selection summary may have too.
	m.recountSelection(nil)
}

func lastPageOffset(total, pageSize int) int {
	if total <= 0 {
		return 0
	}
	return ((total - 1) / pageSize) * pageSize
}

// ToggleRecordSelection flips one record id in the selection. Count and
// status are recomputed from the map and published as a single transition.
func (m *Model) ToggleRecordSelection(id string) {
	m.recountSelection(func(s *Selection) {
		if s.Selected[id] {
			delete(s.Selected, id)
		} else {
			s.Selected[id] = true
		}
		s.All = false
	})
}

// SelectAll selects the whole result set under the current sort and
// criteria, not just the visible window, so the published status and a
// subsequent bulk action agree on what is selected.
func (m *Model) SelectAll() error {
	if !m.connected {
		return nil
	}
	ids, err := m.source.IDs(m.query())
	if err != nil {
		return fmt.Errorf("select all: %w", err)
	}
	m.recountSelection(func(s *Selection) {
		for _, id := range ids {
			s.Selected[id] = true
		}
		s.All = true
	})
	return nil
}

// ClearSelection empties the selection.
func (m *Model) ClearSelection() {
	m.selection.Set(emptySelection())
}

// recountSelection applies mutate (which may be nil) to a copy of the
// current selection, rederives count and status from the map, and publishes
// the result atomically. Deriving from the map on every transition keeps the
// cached summary from ever diverging.
func (m *Model) recountSelection(mutate func(*Selection)) {
	cur := m.selection.Get()
	next := Selection{All: cur.All, Selected: make(map[string]bool, len(cur.Selected))}
	for id, on := range cur.Selected {
		if on {
			next.Selected[id] = true
		}
	}
	if mutate != nil {
		mutate(&next)
	}
	next.Count = len(next.Selected)
	next.Status = deriveStatus(next, m.pagination.Get().Total)
	m.selection.Set(next)
}

// deriveStatus reports ALL only when the count actually covers the total;
// the all flag is informational and never inflates the status.
func deriveStatus(s Selection, total int) SelectionStatus {
	switch {
	case s.Count == 0:
		return SelectionNone
	case total > 0 && s.Count >= total:
		return SelectionAll
	default:
		return SelectionSome
	}
}

// UpdateSorting replaces the single active sort. Requests against columns
// that are unknown or not sortable are ignored and leave the prior sort
// state untouched. A sort change restarts at the first page; the selection
// is preserved per the page-change policy.
func (m *Model) UpdateSorting(column string, direction SortDirection) error {
	if !m.sortable(column) {
		return nil
	}
	m.sorting.Set(Sorting{OrderBy: column, Direction: direction})
	m.offset = 0
	return m.pushQuery()
}

func (m *Model) sortable(name string) bool {
	for _, c := range m.columns.Get() {
		if c.Name == name {
			return c.Sortable
		}
	}
	return false
}

// SetCriteria installs (or, with a zero-valued criteria, removes) the filter
// criteria for one column and re-queries from the first page.
func (m *Model) SetCriteria(column string, c field.Criteria) error {
	if c.Operator == "" && len(c.Values) == 0 {
		delete(m.criteria, column)
	} else {
		m.criteria[column] = c
	}
	m.offset = 0
	return m.pushQuery()
}

// ChangePage moves the visible window. The selection is preserved across
// page changes; only an explicit ClearSelection empties it.
func (m *Model) ChangePage(dir PageDirection) error {
	total := m.pagination.Get().Total
	switch dir {
	case PageFirst:
		m.offset = 0
	case PagePrevious:
		m.offset -= m.pageSize
		if m.offset < 0 {
			m.offset = 0
		}
	case PageNext:
		if next := m.offset + m.pageSize; next < total {
			m.offset = next
		}
	case PageLast:
		m.offset = lastPageOffset(total, m.pageSize)
	}
	return m.pushQuery()
}

// entitledActions filters the registered actions by the access policy.
func (m *Model) entitledActions() map[string]BulkAction {
	out := map[string]BulkAction{}
	for key, a := range m.allActions {
		if m.policy.Allowed(a.ACL) {
			out[key] = a
		}
	}
	return out
}

// ExecuteBulkAction runs the named action against the ids selected at the
// time of invocation. An empty selection is a no-op. The outcome is
// reported to the caller; selection state is not rolled back on failure.
func (m *Model) ExecuteBulkAction(key string) error {
	sel := m.selection.Get()
	if sel.Count == 0 {
		return nil
	}
	action, ok := m.actions.Get()[key]
	if !ok {
		if hint := m.nearestActionKey(key); hint != "" {
			return fmt.Errorf("%w %q (did you mean %q?)", ErrUnknownAction, key, hint)
		}
		return fmt.Errorf("%w %q", ErrUnknownAction, key)
	}
	if m.executor == nil {
		return nil
	}

	ids := make([]string, 0, sel.Count)
	for id := range sel.Selected {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	if err := m.executor.Execute(action.Key, ids, action.Params); err != nil {
		return fmt.Errorf("bulk action %s: %w", action.Key, err)
	}
	return m.pushQuery()
}

// nearestActionKey suggests the closest entitled action key within a small
// edit distance.
func (m *Model) nearestActionKey(key string) string {
	best, bestDist := "", 3
	for candidate := range m.actions.Get() {
		if d := levenshtein.ComputeDistance(key, candidate); d < bestDist {
			best, bestDist = candidate, d
		}
	}
	return best
}
