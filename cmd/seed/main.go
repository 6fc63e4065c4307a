package main

import (
	"context"
	"log"
	"os"
	"time"

	"golang.org/x/crypto/bcrypt"

	"crmcore/internal/database"
	"crmcore/internal/domain"
	"crmcore/internal/repository"
)

func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "crm.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM activity_logs")
	db.Exec("DELETE FROM tasks")
	db.Exec("DELETE FROM deals")
	db.Exec("DELETE FROM contacts")
	db.Exec("DELETE FROM accounts")
	db.Exec("DELETE FROM leads")
	db.Exec("DELETE FROM sections")
	db.Exec("DELETE FROM modules")
	db.Exec("DELETE FROM users")

	ctx := context.Background()
	store := repository.NewStore(db)

	// ================== USERS ==================
	log.Println("Creating users...")

	adminHash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	admin := domain.User{
		Email:        "admin@crmcore.io",
		PasswordHash: string(adminHash),
		Role:         domain.RoleAdmin,
		Name:         "Admin",
	}
	if err := store.Users.Create(ctx, &admin); err != nil {
		log.Fatal(err)
	}

	salesHash, _ := bcrypt.GenerateFromPassword([]byte("sales123"), bcrypt.DefaultCost)
	sales := domain.User{
		Email:        "sales@crmcore.io",
		PasswordHash: string(salesHash),
		Role:         domain.RoleSales,
		Name:         "Riley Stone",
	}
	if err := store.Users.Create(ctx, &sales); err != nil {
		log.Fatal(err)
	}

	// ================== MODULES ==================
	log.Println("Creating default modules...")

	modules := defaultModules()
	for i := range modules {
		if err := store.Modules.Create(ctx, &modules[i]); err != nil {
			log.Fatal(err)
		}
	}

	// ================== SECTIONS ==================
	log.Println("Creating default sections...")

	if err := seedSections(ctx, store, modules); err != nil {
		log.Fatal(err)
	}

	// ================== LEADS ==================
	log.Println("Creating demo leads...")

	if err := seedLeads(ctx, store, sales.ID); err != nil {
		log.Fatal(err)
	}

	log.Println("Seed complete.")
}

func defaultModules() []domain.Module {
	visible := domain.Visibility{Overview: true, Update: true, Create: true, Detail: true}

	common := func(extra ...domain.FieldMeta) domain.FieldMetaList {
		meta := domain.FieldMetaList{
			{Name: "name", Group: "General", Required: true, Type: domain.FieldTypeText, Visibility: visible},
			{Name: "email", Group: "General", Type: domain.FieldTypeEmail, Visibility: visible},
			{Name: "phone_num", Group: "General", Type: domain.FieldTypePhone, Visibility: visible},
			{Name: "description", Group: "Details", Type: domain.FieldTypeMultilineText, Visibility: domain.Visibility{Update: true, Create: true, Detail: true}},
		}
		return append(meta, extra...)
	}

	leadModule := domain.Module{
		Name: "lead",
		Meta: common(
			domain.FieldMeta{Name: "status", Group: "General", Type: domain.FieldTypeSelect, Visibility: visible, Options: []string{
				string(domain.LeadStatusNone),
				string(domain.LeadStatusAttempted),
				string(domain.LeadStatusContactFuture),
				string(domain.LeadStatusContacted),
				string(domain.LeadStatusJunk),
				string(domain.LeadStatusLost),
				string(domain.LeadStatusNotContacted),
				string(domain.LeadStatusPreQualified),
				string(domain.LeadStatusQualified),
			}},
			domain.FieldMeta{Name: "source", Group: "Details", Type: domain.FieldTypeSelect, Visibility: visible, Options: []string{
				string(domain.SourceNone),
				string(domain.SourceAdvertisement),
				string(domain.SourceColdCall),
				string(domain.SourceEmployee),
				string(domain.SourceFacebook),
				string(domain.SourceTwitter),
				string(domain.SourceWebsite),
				string(domain.SourcePhone),
			}},
			domain.FieldMeta{Name: "address", Group: "Details", Type: domain.FieldTypeText, Visibility: visible},
			domain.FieldMeta{Name: "social_account", Group: "Details", Type: domain.FieldTypeText, Visibility: visible},
		),
	}

	accountModule := domain.Module{
		Name: "account",
		Meta: common(
			domain.FieldMeta{Name: "website", Group: "Details", Type: domain.FieldTypeText, Visibility: visible},
			domain.FieldMeta{Name: "address", Group: "Details", Type: domain.FieldTypeText, Visibility: visible},
		),
	}

	contactModule := domain.Module{
		Name: "contact",
		Meta: common(
			domain.FieldMeta{Name: "account", Group: "General", Type: domain.FieldTypeRelation, Visibility: visible, RelateTo: "account", RelateType: domain.RelateSingle},
			domain.FieldMeta{Name: "social_account", Group: "Details", Type: domain.FieldTypeText, Visibility: visible},
		),
		ConvertMeta: domain.ConvertMetaList{
			{
				Source: "lead",
				Meta: map[string]string{
					"name":           "name",
					"email":          "email",
					"description":    "description",
					"social_account": "social_account",
				},
				ShouldConvertNote:       true,
				ShouldConvertAttachment: true,
			},
		},
	}

	amountMin := 0.0
	dealModule := domain.Module{
		Name: "deal",
		Meta: domain.FieldMetaList{
			{Name: "name", Group: "General", Required: true, Type: domain.FieldTypeText, Visibility: visible},
			{Name: "amount", Group: "General", Type: domain.FieldTypeNumber, Visibility: visible, Min: &amountMin},
			{Name: "closing_date", Group: "General", Type: domain.FieldTypeDate, Visibility: visible},
			{Name: "stage", Group: "General", Type: domain.FieldTypeSelect, Visibility: visible, Options: []string{
				string(domain.StageQualification),
				string(domain.StageNeedsAnalysis),
				string(domain.StageProposal),
				string(domain.StageNegotiation),
				string(domain.StageClosedWon),
				string(domain.StageClosedLost),
			}},
			{Name: "account", Group: "Relations", Type: domain.FieldTypeRelation, Visibility: visible, RelateTo: "account", RelateType: domain.RelateSingle},
			{Name: "contact", Group: "Relations", Type: domain.FieldTypeRelation, Visibility: visible, RelateTo: "contact", RelateType: domain.RelateSingle},
			{Name: "description", Group: "Details", Type: domain.FieldTypeMultilineText, Visibility: domain.Visibility{Update: true, Create: true, Detail: true}},
		},
		KanbanMeta: &domain.KanbanMeta{
			Field:       "stage",
			AggregateBy: "amount",
			Metric:      "sum",
		},
	}

	return []domain.Module{leadModule, accountModule, contactModule, dealModule}
}

func seedSections(ctx context.Context, store *repository.Store, modules []domain.Module) error {
	names := map[string]string{
		"lead":    "Lead Information",
		"account": "Account Information",
		"contact": "Contact Information",
		"deal":    "Deal Information",
	}

	for i := range modules {
		m := &modules[i]
		fields := make(domain.StringList, 0, len(m.Meta))
		for _, f := range m.Meta {
			fields = append(fields, f.Name)
		}
		sec := domain.Section{
			ModuleID:  &m.ID,
			Name:      names[m.Name],
			Order:     1,
			Fields:    fields,
			IsDefault: true,
		}
		if err := store.Sections.Create(ctx, &sec); err != nil {
			return err
		}
	}
	return nil
}

func seedLeads(ctx context.Context, store *repository.Store, ownerID string) error {
	leads := []domain.Lead{
		{
			OwnerID:       &ownerID,
			FullName:      "Avery Morgan",
			Email:         "avery.morgan@example.com",
			Status:        domain.LeadStatusContacted,
			Source:        domain.SourceWebsite,
			PhoneNum:      "+1-202-555-0117",
			Description:   "Asked for a demo of the reporting dashboard.",
			CustomFields:  domain.JSONMap{"budget": 25000.0},
			SocialAccount: "@averymorgan",
		},
		{
			OwnerID:  &ownerID,
			FullName: "Casey Nguyen",
			Email:    "casey.nguyen@example.com",
			Status:   domain.LeadStatusQualified,
			Source:   domain.SourceColdCall,
			PhoneNum: "+1-202-555-0163",
		},
		{
			FullName: "Drew Patel",
			Email:    "drew.patel@example.com",
			Status:   domain.LeadStatusNotContacted,
			Source:   domain.SourceFacebook,
		},
	}

	for i := range leads {
		if err := store.Leads.Create(ctx, &leads[i]); err != nil {
			return err
		}
	}

	due := time.Now().AddDate(0, 0, 7)
	task := domain.Task{
		OwnerID: &ownerID,
		LeadID:  &leads[0].ID,
		Title:   "Schedule demo call",
		DueDate: &due,
		Status:  domain.TaskOpen,
	}
	return store.Tasks.Create(ctx, &task)
}
