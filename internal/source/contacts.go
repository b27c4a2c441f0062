// Package source adapts sqlite-backed repositories to the table model's
// record-source contract.
package source

import (
	"context"
	"fmt"

	"github.com/ravenfield/recview/internal/database/repository"
	"github.com/ravenfield/recview/internal/field"
	"github.com/ravenfield/recview/internal/observe"
	"github.com/ravenfield/recview/internal/table"
)

// ContactSource serves contact records. Connect issues the first query and
// hands out the page cell; SetQuery re-queries and re-emits on the same
// cell; Disconnect drops the cell so a stale subscription cannot retain the
// result set.
type ContactSource struct {
	ctx  context.Context
	repo *repository.ContactRepo
	cell *observe.Cell[table.Page]
}

func NewContactSource(ctx context.Context, repo *repository.ContactRepo) *ContactSource {
	return &ContactSource{ctx: ctx, repo: repo}
}

func (s *ContactSource) Connect(q table.Query) (*observe.Cell[table.Page], error) {
	page, err := s.load(q)
	if err != nil {
		return nil, err
	}
	s.cell = observe.NewCell(page)
	return s.cell, nil
}

func (s *ContactSource) Disconnect() {
	s.cell = nil
}

func (s *ContactSource) SetQuery(q table.Query) error {
	if s.cell == nil {
		return fmt.Errorf("contact source: not connected")
	}
	page, err := s.load(q)
	if err != nil {
		return err
	}
	s.cell.Set(page)
	return nil
}

// IDs serves the full matching id set for select-all.
func (s *ContactSource) IDs(q table.Query) ([]string, error) {
	lq := listQuery(q)
	lq.Limit, lq.Offset = 0, 0
	ids, err := s.repo.IDs(s.ctx, lq)
	if err != nil {
		return nil, fmt.Errorf("list contact ids: %w", err)
	}
	return ids, nil
}

func listQuery(q table.Query) repository.ListQuery {
	lq := repository.ListQuery{
		OrderBy:  q.OrderBy,
		Desc:     q.Direction == table.SortDesc,
		Limit:    q.Limit,
		Offset:   q.Offset,
		Contains: map[string]string{},
		Equals:   map[string]string{},
	}
	for col, c := range q.Criteria {
		if len(c.Values) == 0 {
			continue
		}
		switch c.Operator {
		case "contains":
			lq.Contains[col] = c.Values[0]
		default: // "=" and anything unrecognized filter exactly
			lq.Equals[col] = c.Values[0]
		}
	}
	return lq
}

func (s *ContactSource) load(q table.Query) (table.Page, error) {
	lq := listQuery(q)

	contacts, err := s.repo.List(s.ctx, lq)
	if err != nil {
		return table.Page{}, fmt.Errorf("list contacts: %w", err)
	}
	total, err := s.repo.Count(s.ctx, lq)
	if err != nil {
		return table.Page{}, fmt.Errorf("count contacts: %w", err)
	}

	records := make([]field.Record, 0, len(contacts))
	for _, c := range contacts {
		records = append(records, contactRecord(c))
	}
	return table.Page{Records: records, Total: total}, nil
}

// contactRecord flattens a contact row into the attribute map the field
// renderers consume. Values stay in their internal representations.
func contactRecord(c repository.Contact) field.Record {
	return field.Record{
		ID:     c.ID,
		Module: "contacts",
		Attributes: map[string]string{
			"salutation":     c.Salutation,
			"first_name":     c.FirstName,
			"last_name":      c.LastName,
			"name":           "salutation first_name last_name",
			"account_name":   c.AccountName,
			"account_id":     c.AccountID,
			"account_type":   c.AccountType,
			"phone_work":     c.PhoneWork,
			"email":          c.Email,
			"website":        c.Website,
			"annual_revenue": c.AnnualRevenue,
			"date_entered":   c.DateEntered,
		},
	}
}

// ContactActions executes bulk actions against the contacts table.
type ContactActions struct {
	ctx  context.Context
	repo *repository.ContactRepo
}

func NewContactActions(ctx context.Context, repo *repository.ContactRepo) *ContactActions {
	return &ContactActions{ctx: ctx, repo: repo}
}

// Execute implements table.ActionExecutor.
func (a *ContactActions) Execute(key string, ids []string, params map[string]string) error {
	switch key {
	case "delete":
		return a.repo.Delete(a.ctx, ids)
	default:
		return fmt.Errorf("contact action %q not implemented", key)
	}
}
