// Package tui is the terminal list view over a table.Model. It subscribes
// to the model's cells, renders cells through the field registry, and maps
// keys onto model operations. All state transitions run on the bubbletea
// event loop, which satisfies the single-goroutine contract of the cells.
package tui

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ravenfield/recview/internal/field"
	"github.com/ravenfield/recview/internal/table"
	"github.com/ravenfield/recview/widgets"
)

// styles
var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
	headerStyle = lipgloss.NewStyle().Bold(true)
	statusStyle = lipgloss.NewStyle().Faint(true)
)

// App renders one module's record list.
type App struct {
	title    string
	model    *table.Model
	registry *field.Registry

	// snapshots kept current by cell subscriptions
	records    []field.Record
	columns    []table.Column
	selection  table.Selection
	sorting    table.Sorting
	pagination table.Pagination
	actions    map[string]table.BulkAction

	cursor  int
	status  string
	width   int
	height  int
	cancels []func()
}

// New wires an App to the model's cells. The subscriptions fire
// synchronously, so the snapshots are populated before New returns.
func New(title string, model *table.Model, registry *field.Registry) *App {
	a := &App{title: title, model: model, registry: registry, width: 120, height: 40}
	a.cancels = append(a.cancels,
		model.Records().Subscribe(func(recs []field.Record) {
			a.records = recs
			if a.cursor >= len(recs) {
				a.cursor = len(recs) - 1
			}
			if a.cursor < 0 {
				a.cursor = 0
			}
		}),
		model.Columns().Subscribe(func(cols []table.Column) { a.columns = cols }),
		model.Selection().Subscribe(func(s table.Selection) { a.selection = s }),
		model.Sorting().Subscribe(func(s table.Sorting) { a.sorting = s }),
		model.Pagination().Subscribe(func(p table.Pagination) { a.pagination = p }),
		model.BulkActions().Subscribe(func(m map[string]table.BulkAction) { a.actions = m }),
	)
	return a
}

func (a *App) Init() tea.Cmd {
	if err := a.model.Connect(); err != nil {
		a.status = "error: " + err.Error()
	}
	return nil
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = m.Width, m.Height
		a.model.SetMaxColumns(fittingColumns(m.Width))
	case tea.KeyMsg:
		return a.handleKey(m)
	}
	return a, nil
}

func (a *App) handleKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "q", "ctrl+c":
		a.Close()
		return a, tea.Quit
	case "up", "k":
		if a.cursor > 0 {
			a.cursor--
		}
	case "down", "j":
		if a.cursor < len(a.records)-1 {
			a.cursor++
		}
	case " ":
		if a.cursor < len(a.records) {
			a.model.ToggleRecordSelection(a.records[a.cursor].ID)
		}
	case "a":
		if err := a.model.SelectAll(); err != nil {
			a.status = "error: " + err.Error()
		}
	case "x":
		a.model.ClearSelection()
	case "s":
		a.advanceSort()
	case "left", "h":
		a.page(table.PagePrevious)
	case "right", "l":
		a.page(table.PageNext)
	case "g":
		a.page(table.PageFirst)
	case "G":
		a.page(table.PageLast)
	case "d":
		a.runAction("delete")
	}
	return a, nil
}

func (a *App) page(dir table.PageDirection) {
	if err := a.model.ChangePage(dir); err != nil {
		a.status = "error: " + err.Error()
		return
	}
	a.status = ""
}

// advanceSort cycles the single sort through the sortable columns:
// unsorted -> first ASC -> first DESC -> second ASC -> ... -> wrap.
func (a *App) advanceSort() {
	var sortable []string
	for _, c := range a.columns {
		if c.Sortable {
			sortable = append(sortable, c.Name)
		}
	}
	if len(sortable) == 0 {
		return
	}
	next, dir := sortable[0], table.SortAsc
	for i, name := range sortable {
		if name != a.sorting.OrderBy {
			continue
		}
		if a.sorting.Direction == table.SortAsc {
			next, dir = name, table.SortDesc
		} else {
			next, dir = sortable[(i+1)%len(sortable)], table.SortAsc
		}
		break
	}
	if err := a.model.UpdateSorting(next, dir); err != nil {
		a.status = "error: " + err.Error()
		return
	}
	a.status = ""
}

func (a *App) runAction(key string) {
	if a.selection.Count == 0 {
		a.status = "nothing selected"
		return
	}
	count := a.selection.Count
	if err := a.model.ExecuteBulkAction(key); err != nil {
		a.status = "error: " + err.Error()
		return
	}
	a.model.ClearSelection()
	a.status = fmt.Sprintf("%s: %d record(s)", key, count)
}

// Close releases the cell subscriptions and the model.
func (a *App) Close() {
	for _, cancel := range a.cancels {
		cancel()
	}
	a.cancels = nil
	a.model.Close()
}

// fittingColumns estimates how many columns fit the viewport, reserving
// room for the selection marker column.
func fittingColumns(width int) int {
	n := (width - 6) / 20
	if n < 1 {
		n = 1
	}
	return n
}

func (a *App) View() string {
	title := titleStyle.Render(a.title)

	headers := make([]string, 0, len(a.columns)+1)
	headers = append(headers, a.selectionMarker())
	for _, c := range a.columns {
		h := c.Label
		if h == "" {
			h = c.Name
		}
		if c.Name == a.sorting.OrderBy {
			if a.sorting.Direction == table.SortDesc {
				h += " ▼"
			} else {
				h += " ▲"
			}
		}
		headers = append(headers, h)
	}

	rows := make([][]string, 0, len(a.records))
	for i := range a.records {
		rows = append(rows, a.renderRow(i))
	}

	grid := widgets.Table{
		Headers: headers,
		Rows:    rows,
		Widths:  a.columnWidths(rows),
	}
	parts := strings.SplitN(grid.Render(a.width, a.height-4), "\n", 2)
	body := headerStyle.Render(parts[0])
	if len(parts) > 1 {
		body += "\n" + parts[1]
	}

	footer := a.renderFooter()
	return fmt.Sprintf("%s\n%s\n%s", title, body, footer)
}

func (a *App) renderRow(i int) []string {
	rec := a.records[i]
	marker := " "
	if i == a.cursor {
		marker = "▶"
	}
	box := "[ ]"
	if a.selection.Selected[rec.ID] {
		box = "[x]"
	}
	row := []string{marker + box}
	for _, c := range a.columns {
		f := field.Field{
			Type:       c.Type,
			Value:      rec.Attribute(c.Name),
			Definition: c.Definition,
		}
		// failed renders degrade to the raw text carried in the payload
		payload, _ := a.registry.Render(&f, &rec, field.ModeList)
		row = append(row, payload.Text)
	}
	return row
}

func (a *App) columnWidths(rows [][]string) []int {
	widths := make([]int, len(a.columns)+1)
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len([]rune(cell)) > widths[i] {
				widths[i] = len([]rune(cell))
			}
		}
	}
	return widths
}

func (a *App) selectionMarker() string {
	switch a.selection.Status {
	case table.SelectionAll:
		return "[x]"
	case table.SelectionSome:
		return "[-]"
	default:
		return "[ ]"
	}
}

func (a *App) renderFooter() string {
	p := a.pagination
	rangeText := fmt.Sprintf("%d - %d of %d", p.PageFirst, p.PageLast, p.Total)
	selText := ""
	if a.selection.Count > 0 {
		selText = fmt.Sprintf("  %d selected", a.selection.Count)
	}

	keys := "[space] Select  [a] All  [x] Clear  [s] Sort  [←/→] Page"
	var actionKeys []string
	for key := range a.actions {
		actionKeys = append(actionKeys, key)
	}
	sort.Strings(actionKeys)
	for _, key := range actionKeys {
		keys += fmt.Sprintf("  [%s] %s", key[:1], key)
	}
	keys += "  [q] Quit"

	out := rangeText + selText + "\n" + keys
	if a.status != "" {
		out += "\n" + statusStyle.Render(a.status)
	}
	return out
}
