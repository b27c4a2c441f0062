// Package repository holds the thin data-access layer over sqlite.
package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// Contact represents a contact row. Annual revenue and date entered are
// stored in the internal raw representations the presentation core expects
// ("1234.5", "2006-01-02 15:04:05").
type Contact struct {
	ID            string
	Salutation    string
	FirstName     string
	LastName      string
	AccountName   string
	AccountID     string
	AccountType   string
	PhoneWork     string
	Email         string
	Website       string
	AnnualRevenue string
	DateEntered   string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ListQuery shapes a paged, sorted, filtered contact listing.
type ListQuery struct {
	OrderBy  string // one of the sortable column names; "" = default order
	Desc     bool
	Limit    int
	Offset   int
	Contains map[string]string // column -> substring filter
	Equals   map[string]string // column -> exact filter
}

// sortColumns whitelists ORDER BY targets; anything else falls back to the
// default order.
var sortColumns = map[string]string{
	"name":           "last_name",
	"account_name":   "account_name",
	"account_type":   "account_type",
	"annual_revenue": "CAST(annual_revenue AS REAL)",
	"date_entered":   "date_entered",
}

// filterColumns whitelists WHERE targets for user-supplied criteria.
var filterColumns = map[string]string{
	"name":         "last_name",
	"first_name":   "first_name",
	"last_name":    "last_name",
	"account_name": "account_name",
	"account_type": "account_type",
	"email":        "email",
	"phone_work":   "phone_work",
}

// ContactRepo handles contacts.
type ContactRepo struct {
	db *sql.DB
}

func NewContactRepo(db *sql.DB) *ContactRepo { return &ContactRepo{db: db} }

func (r *ContactRepo) Insert(ctx context.Context, c Contact) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO contacts(
	 id, salutation, first_name, last_name, account_name, account_id, account_type,
	 phone_work, email, website, annual_revenue, date_entered, created_at, updated_at)
	VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP);
	`,
		c.ID, c.Salutation, c.FirstName, c.LastName, c.AccountName, c.AccountID,
		c.AccountType, c.PhoneWork, c.Email, c.Website, c.AnnualRevenue, c.DateEntered)
	return err
}

func (r *ContactRepo) Get(ctx context.Context, id string) (Contact, error) {
	row := r.db.QueryRowContext(ctx, selectContacts+` WHERE deleted = 0 AND id = ?`, id)
	return scanContact(row)
}

// Delete soft-deletes the given ids. Used by the delete bulk action.
func (r *ContactRepo) Delete(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	_, err := r.db.ExecContext(ctx,
		`UPDATE contacts SET deleted = 1, updated_at = CURRENT_TIMESTAMP WHERE id IN (`+placeholders+`)`,
		args...)
	return err
}

const selectContacts = `SELECT id, salutation, first_name, last_name, account_name, account_id,
 account_type, phone_work, email, website, annual_revenue, date_entered, created_at, updated_at
 FROM contacts`

func (r *ContactRepo) List(ctx context.Context, q ListQuery) ([]Contact, error) {
	where, args := buildFilters(q)

	query := selectContacts + " WHERE " + strings.Join(where, " AND ")
	query += " ORDER BY " + orderClause(q)
	if q.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", q.Limit, q.Offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Contact
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// IDs returns every matching row id in q's order, ignoring the page window.
// Backs the table model's select-all.
func (r *ContactRepo) IDs(ctx context.Context, q ListQuery) ([]string, error) {
	where, args := buildFilters(q)
	query := "SELECT id FROM contacts WHERE " + strings.Join(where, " AND ") +
		" ORDER BY " + orderClause(q)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

// Count returns the total matching rows, ignoring the page window.
func (r *ContactRepo) Count(ctx context.Context, q ListQuery) (int, error) {
	where, args := buildFilters(q)
	query := "SELECT COUNT(*) FROM contacts WHERE " + strings.Join(where, " AND ")

	var n int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func buildFilters(q ListQuery) ([]string, []interface{}) {
	where := []string{"deleted = 0"}
	var args []interface{}

	for col, v := range q.Contains {
		sqlCol, ok := filterColumns[col]
		if !ok || v == "" {
			continue
		}
		where = append(where, sqlCol+" LIKE ?")
		args = append(args, "%"+v+"%")
	}
	for col, v := range q.Equals {
		sqlCol, ok := filterColumns[col]
		if !ok || v == "" {
			continue
		}
		where = append(where, sqlCol+" = ?")
		args = append(args, v)
	}
	return where, args
}

func orderClause(q ListQuery) string {
	col, ok := sortColumns[q.OrderBy]
	if !ok {
		return "last_name ASC, first_name ASC"
	}
	dir := "ASC"
	if q.Desc {
		dir = "DESC"
	}
	return col + " " + dir + ", id ASC"
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanContact(row rowScanner) (Contact, error) {
	var c Contact
	err := row.Scan(
		&c.ID, &c.Salutation, &c.FirstName, &c.LastName, &c.AccountName, &c.AccountID,
		&c.AccountType, &c.PhoneWork, &c.Email, &c.Website, &c.AnnualRevenue,
		&c.DateEntered, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}
