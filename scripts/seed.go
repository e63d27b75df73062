package main

import (
	"context"
	"log"
	"os"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/google/uuid"
	"github.com/schoolhubng/Schooladmindesign/backend/internal/infrastructure/clients/postgres"
	"github.com/schoolhubng/Schooladmindesign/backend/pkg/config"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS schools (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		school_type TEXT NOT NULL DEFAULT '',
		city TEXT NOT NULL DEFAULT '',
		state TEXT NOT NULL DEFAULT '',
		email TEXT NOT NULL DEFAULT '',
		phone_number TEXT NOT NULL DEFAULT '',
		website TEXT NOT NULL DEFAULT '',
		is_active BOOLEAN NOT NULL DEFAULT TRUE
	)`,
	`CREATE TABLE IF NOT EXISTS students (
		id TEXT PRIMARY KEY,
		school_id TEXT NOT NULL,
		first_name TEXT NOT NULL DEFAULT '',
		last_name TEXT NOT NULL DEFAULT '',
		email TEXT NOT NULL DEFAULT '',
		grade_level TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'enrolled'
	)`,
	`CREATE TABLE IF NOT EXISTS prospects (
		id TEXT PRIMARY KEY,
		school_id TEXT NOT NULL,
		first_name TEXT NOT NULL DEFAULT '',
		last_name TEXT NOT NULL DEFAULT '',
		email TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'new',
		source TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		school_id TEXT NOT NULL,
		first_name TEXT NOT NULL DEFAULT '',
		last_name TEXT NOT NULL DEFAULT '',
		email TEXT NOT NULL DEFAULT '',
		role TEXT NOT NULL DEFAULT 'staff',
		is_active BOOLEAN NOT NULL DEFAULT TRUE
	)`,
	`CREATE TABLE IF NOT EXISTS addresses (
		id TEXT PRIMARY KEY,
		school_id TEXT NOT NULL,
		street TEXT NOT NULL DEFAULT '',
		city TEXT NOT NULL DEFAULT '',
		state TEXT NOT NULL DEFAULT '',
		zip_code TEXT NOT NULL DEFAULT '',
		country TEXT NOT NULL DEFAULT ''
	)`,
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer pgClient.Close()

	ctx := context.Background()

	for _, stmt := range schema {
		if _, err := pgClient.DB().ExecContext(ctx, stmt); err != nil {
			log.Fatalf("Failed to create table: %v", err)
		}
	}

	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, truncating tables before seeding")
		_, err := pgClient.DB().ExecContext(ctx, `
			TRUNCATE TABLE
				addresses,
				users,
				prospects,
				students,
				schools
			RESTART IDENTITY CASCADE
		`)
		if err != nil {
			log.Fatalf("Failed to reset tables: %v", err)
		}
	}

	db := goqu.New("postgres", pgClient.DB())

	schoolIDs := make([]string, 3)
	for i := range schoolIDs {
		schoolIDs[i] = uuid.NewString()
	}

	schools := []goqu.Record{
		{"id": schoolIDs[0], "name": "Springfield High", "school_type": "secondary", "city": "Springfield", "state": "IL", "email": "admin@springfieldhigh.edu", "phone_number": "+1-217-555-0100", "website": "https://springfieldhigh.edu", "is_active": true},
		{"id": schoolIDs[1], "name": "Lagos Grammar School", "school_type": "secondary", "city": "Lagos", "state": "Lagos", "email": "info@lagosgrammar.edu.ng", "phone_number": "+234-1-555-0200", "website": "https://lagosgrammar.edu.ng", "is_active": true},
		{"id": schoolIDs[2], "name": "Abuja Montessori", "school_type": "primary", "city": "Abuja", "state": "FCT", "email": "hello@abujamontessori.ng", "phone_number": "+234-9-555-0300", "website": "https://abujamontessori.ng", "is_active": true},
	}
	seedTable(ctx, db, "schools", schools)

	students := []goqu.Record{
		{"id": uuid.NewString(), "school_id": schoolIDs[0], "first_name": "Ada", "last_name": "Obi", "email": "ada.obi@springfieldhigh.edu", "grade_level": "SS2", "status": "enrolled"},
		{"id": uuid.NewString(), "school_id": schoolIDs[0], "first_name": "John", "last_name": "Doe", "email": "john.doe@springfieldhigh.edu", "grade_level": "SS1", "status": "enrolled"},
		{"id": uuid.NewString(), "school_id": schoolIDs[1], "first_name": "Chinedu", "last_name": "Eze", "email": "chinedu.eze@lagosgrammar.edu.ng", "grade_level": "JS3", "status": "enrolled"},
	}
	seedTable(ctx, db, "students", students)

	prospects := []goqu.Record{
		{"id": uuid.NewString(), "school_id": schoolIDs[1], "first_name": "Amina", "last_name": "Bello", "email": "amina.bello@example.com", "status": "contacted", "source": "website"},
		{"id": uuid.NewString(), "school_id": schoolIDs[2], "first_name": "Tunde", "last_name": "Adeyemi", "email": "tunde.adeyemi@example.com", "status": "new", "source": "referral"},
	}
	seedTable(ctx, db, "prospects", prospects)

	users := []goqu.Record{
		{"id": uuid.NewString(), "school_id": schoolIDs[0], "first_name": "Jane", "last_name": "Smith", "email": "jane.smith@springfieldhigh.edu", "role": "admin", "is_active": true},
		{"id": uuid.NewString(), "school_id": schoolIDs[1], "first_name": "Emeka", "last_name": "Okafor", "email": "emeka.okafor@lagosgrammar.edu.ng", "role": "teacher", "is_active": true},
	}
	seedTable(ctx, db, "users", users)

	addresses := []goqu.Record{
		{"id": uuid.NewString(), "school_id": schoolIDs[0], "street": "742 Evergreen Terrace", "city": "Springfield", "state": "IL", "zip_code": "62701", "country": "USA"},
		{"id": uuid.NewString(), "school_id": schoolIDs[1], "street": "12 Marina Road", "city": "Lagos", "state": "Lagos", "zip_code": "101001", "country": "Nigeria"},
		{"id": uuid.NewString(), "school_id": schoolIDs[2], "street": "5 Gana Street, Maitama", "city": "Abuja", "state": "FCT", "zip_code": "900001", "country": "Nigeria"},
	}
	seedTable(ctx, db, "addresses", addresses)

	log.Println("Seeding complete")
}

func seedTable(ctx context.Context, db *goqu.Database, table string, rows []goqu.Record) {
	for _, row := range rows {
		if _, err := db.Insert(table).Rows(row).Executor().ExecContext(ctx); err != nil {
			log.Printf("Failed to insert into %s: %v", table, err)
		}
	}
	log.Printf("Seeded %d rows into %s", len(rows), table)
}
