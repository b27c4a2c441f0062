package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/ravenfield/recview/internal/database/repository"
)

// SeedDemo ensures a small deterministic contact set exists for new
// databases so the list view has something to show. Idempotent: ids are
// derived from the contact name, and a non-empty table is left alone.
func SeedDemo(ctx context.Context, db *sql.DB) error {
	repo := repository.NewContactRepo(db)
	if n, err := repo.Count(ctx, repository.ListQuery{}); err != nil || n > 0 {
		return err
	}

	demo := []repository.Contact{
		{Salutation: "Ms.", FirstName: "Ada", LastName: "Byrne", AccountName: "Aster Analytics", AccountType: "_customer", PhoneWork: "+44 20 7946 0301", Email: "ada.byrne@aster.example", Website: "https://aster.example/", AnnualRevenue: "1250000.5", DateEntered: "2020-05-14 23:11:01"},
		{Salutation: "Mr.", FirstName: "Tom", LastName: "Calder", AccountName: "Calder Freight", AccountType: "_reseller", PhoneWork: "+44 20 7946 0115", Email: "tom@calderfreight.example", Website: "https://calderfreight.example/", AnnualRevenue: "860400", DateEntered: "2020-05-15 09:30:00"},
		{Salutation: "Dr.", FirstName: "Iris", LastName: "Mendel", AccountName: "Mendel Labs", AccountType: "_customer", PhoneWork: "+1 617 555 0144", Email: "iris@mendellabs.example", Website: "https://mendellabs.example/", AnnualRevenue: "3020000", DateEntered: "2021-01-02 08:00:00"},
		{Salutation: "", FirstName: "Noor", LastName: "Haddad", AccountName: "Haddad & Co", AccountType: "_partner", PhoneWork: "+971 4 555 0102", Email: "noor@haddad.example", Website: "https://haddad.example/", AnnualRevenue: "540000.75", DateEntered: "2021-03-18 14:45:10"},
		{Salutation: "Mr.", FirstName: "Sam", LastName: "Okafor", AccountName: "Okafor Media", AccountType: "_customer", PhoneWork: "+234 1 555 0188", Email: "sam@okafor.example", Website: "https://okafor.example/", AnnualRevenue: "97500", DateEntered: "2022-07-09 11:20:33"},
	}
	return WithTx(db, func(tx *sql.Tx) error {
		for _, c := range demo {
			c.ID = uuid.NewSHA1(uuid.NameSpaceOID, []byte("contact:"+c.FirstName+" "+c.LastName)).String()
			c.AccountID = uuid.NewSHA1(uuid.NameSpaceOID, []byte("account:"+c.AccountName)).String()
			if err := insertContactTx(ctx, tx, c); err != nil {
				return fmt.Errorf("seed %s %s: %w", c.FirstName, c.LastName, err)
			}
		}
		return nil
	})
}

func insertContactTx(ctx context.Context, tx *sql.Tx, c repository.Contact) error {
	now := Now()
	_, err := tx.ExecContext(ctx, `
	INSERT INTO contacts(
	 id, salutation, first_name, last_name, account_name, account_id, account_type,
	 phone_work, email, website, annual_revenue, date_entered, created_at, updated_at)
	VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
	`,
		c.ID, c.Salutation, c.FirstName, c.LastName, c.AccountName, c.AccountID,
		c.AccountType, c.PhoneWork, c.Email, c.Website, c.AnnualRevenue, c.DateEntered,
		now, now)
	return err
}
