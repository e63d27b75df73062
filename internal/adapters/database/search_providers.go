package database

import (
	"time"

	"github.com/schoolhubng/Schooladmindesign/backend/internal/domain/entities"
	"github.com/schoolhubng/Schooladmindesign/backend/internal/domain/providers"
	"github.com/schoolhubng/Schooladmindesign/backend/internal/infrastructure/clients/postgres"
)

// NewSchoolSearchProvider searches the schools table
func NewSchoolSearchProvider(client *postgres.Client, timeout time.Duration) providers.SearchProvider {
	return NewTableProvider(client, schoolSpec(), timeout)
}

// NewStudentSearchProvider searches the students table
func NewStudentSearchProvider(client *postgres.Client, timeout time.Duration) providers.SearchProvider {
	return NewTableProvider(client, studentSpec(), timeout)
}

// NewProspectSearchProvider searches the prospects table
func NewProspectSearchProvider(client *postgres.Client, timeout time.Duration) providers.SearchProvider {
	return NewTableProvider(client, prospectSpec(), timeout)
}

// NewUserSearchProvider searches the users table
func NewUserSearchProvider(client *postgres.Client, timeout time.Duration) providers.SearchProvider {
	return NewTableProvider(client, userSpec(), timeout)
}

// NewAddressSearchProvider searches the addresses table
func NewAddressSearchProvider(client *postgres.Client, timeout time.Duration) providers.SearchProvider {
	return NewTableProvider(client, addressSpec(), timeout)
}

func schoolSpec() TableSpec {
	return TableSpec{
		EntityType: entities.EntityTypeSchool,
		Table:      "schools",
		Columns: []string{
			"id", "name", "school_type", "city", "state",
			"email", "phone_number", "website",
		},
		SearchColumns: []string{"name", "city", "email"},
		FilterColumns: map[string]string{
			"school_type": "school_type",
			"city":        "city",
			"state":       "state",
		},
		ActiveColumn: "is_active",
	}
}

func studentSpec() TableSpec {
	return TableSpec{
		EntityType: entities.EntityTypeStudent,
		Table:      "students",
		Columns: []string{
			"id", "school_id", "first_name", "last_name",
			"email", "grade_level", "status",
		},
		SearchColumns: []string{"first_name", "last_name", "email"},
		FilterColumns: map[string]string{
			"school_id":   "school_id",
			"grade_level": "grade_level",
			"status":      "status",
		},
	}
}

func prospectSpec() TableSpec {
	return TableSpec{
		EntityType: entities.EntityTypeProspect,
		Table:      "prospects",
		Columns: []string{
			"id", "school_id", "first_name", "last_name",
			"email", "status", "source",
		},
		SearchColumns: []string{"first_name", "last_name", "email"},
		FilterColumns: map[string]string{
			"school_id": "school_id",
			"status":    "status",
			"source":    "source",
		},
	}
}

func userSpec() TableSpec {
	return TableSpec{
		EntityType: entities.EntityTypeUser,
		Table:      "users",
		Columns: []string{
			"id", "school_id", "first_name", "last_name",
			"email", "role",
		},
		SearchColumns: []string{"first_name", "last_name", "email"},
		FilterColumns: map[string]string{
			"school_id": "school_id",
			"role":      "role",
		},
		ActiveColumn: "is_active",
	}
}

func addressSpec() TableSpec {
	return TableSpec{
		EntityType: entities.EntityTypeAddress,
		Table:      "addresses",
		Columns: []string{
			"id", "school_id", "street", "city", "state",
			"zip_code", "country",
		},
		SearchColumns: []string{"street", "city", "zip_code"},
		FilterColumns: map[string]string{
			"school_id": "school_id",
			"city":      "city",
			"state":     "state",
			"country":   "country",
		},
	}
}
