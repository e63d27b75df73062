package entities

// EntityType identifies one of the searchable domain categories.
// The set is closed: every mapper and provider dispatches over exactly
// these values.
type EntityType string

const (
	EntityTypeSchool   EntityType = "school"
	EntityTypeStudent  EntityType = "student"
	EntityTypeProspect EntityType = "prospect"
	EntityTypeUser     EntityType = "user"
	EntityTypeAddress  EntityType = "address"
)

// AllEntityTypes returns every known entity type in canonical order
func AllEntityTypes() []EntityType {
	return []EntityType{
		EntityTypeSchool,
		EntityTypeStudent,
		EntityTypeProspect,
		EntityTypeUser,
		EntityTypeAddress,
	}
}

// IsValid reports whether t is a known entity type
func (t EntityType) IsValid() bool {
	switch t {
	case EntityTypeSchool, EntityTypeStudent, EntityTypeProspect, EntityTypeUser, EntityTypeAddress:
		return true
	}
	return false
}

// ParseEntityType parses s into an EntityType
func ParseEntityType(s string) (EntityType, bool) {
	t := EntityType(s)
	return t, t.IsValid()
}
