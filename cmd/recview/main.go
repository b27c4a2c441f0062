package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ravenfield/recview/internal/config"
	"github.com/ravenfield/recview/internal/database"
	"github.com/ravenfield/recview/internal/database/repository"
	"github.com/ravenfield/recview/internal/field"
	"github.com/ravenfield/recview/internal/format"
	"github.com/ravenfield/recview/internal/observe"
	"github.com/ravenfield/recview/internal/prefs"
	"github.com/ravenfield/recview/internal/source"
	"github.com/ravenfield/recview/internal/table"
	"github.com/ravenfield/recview/internal/tui"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		log.Fatalf("mkdir db dir: %v", err)
	}

	if err := database.RunMigrations(cfg.Database.Path); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if err := database.SeedDemo(ctx, db); err != nil {
		log.Fatalf("seed demo data: %v", err)
	}

	// preference resolution: saved user overrides over the configured
	// system settings over the built-in defaults
	overrides, err := prefs.Load()
	if err != nil {
		log.Printf("warn: user preferences unreadable, using defaults: %v", err)
	}
	userPrefs := observe.NewCell(overrides)
	systemPrefs := observe.NewCell(cfg.SystemSettings())
	resolver := format.NewResolver(userPrefs, systemPrefs)
	defer resolver.Close()

	if err := resolver.Preferences().Get().Validate(); err != nil {
		log.Fatalf("display preferences: %v", err)
	}

	numbers := format.NewNumberFormatter(resolver.Preferences())
	currencies := format.NewCurrencyFormatter(resolver.Preferences(), numbers)
	datetimes := format.NewDatetimeFormatter(resolver.Preferences())

	registry := field.NewRegistry(numbers, currencies, datetimes, field.StaticOptions{
		"account_type_dom": {
			"_customer": "Customer",
			"_reseller": "Reseller",
			"_partner":  "Partner",
		},
	})

	contacts := repository.NewContactRepo(db)
	model := table.New(table.Options{
		Source:   source.NewContactSource(ctx, contacts),
		Executor: source.NewContactActions(ctx, contacts),
		Columns:  contactColumns(),
		Actions: []table.BulkAction{
			{Key: "delete", LabelKey: "LBL_DELETE"},
		},
		PageSize: cfg.UI.PageSize,
	})
	if cfg.UI.MaxColumns > 0 {
		model.SetMaxColumns(cfg.UI.MaxColumns)
	}

	p := tea.NewProgram(tui.New("Contacts", model, registry), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("error: %v\n", err)
	}
}

func contactColumns() []table.Column {
	return []table.Column{
		{Name: "name", Type: field.TypeFullname, Label: "Name", Link: true, Default: true, Sortable: true},
		{Name: "account_name", Type: field.TypeRelate, Label: "Account Name", Default: true, Sortable: true,
			Definition: field.Definition{Module: "accounts", IDName: "account_id"}},
		{Name: "account_type", Type: field.TypeEnum, Label: "Type", Default: true,
			Definition: field.Definition{Options: "account_type_dom"}},
		{Name: "phone_work", Type: field.TypePhone, Label: "Office Phone", Default: true},
		{Name: "email", Type: field.TypeVarchar, Label: "Email", Sortable: true},
		{Name: "website", Type: field.TypeURL, Label: "Website"},
		{Name: "annual_revenue", Type: field.TypeCurrency, Label: "Annual Revenue", Sortable: true},
		{Name: "date_entered", Type: field.TypeDatetime, Label: "Date Created", Sortable: true},
	}
}
