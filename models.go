package alumni

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// User is the account model. The password hash never leaves the store
// boundary: it is excluded from every JSON rendering.
type User struct {
	bun.BaseModel `bun:"table:users,alias:usr"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Email         string     `bun:"email,notnull,unique" json:"email,omitempty"`
	Role          UserRole   `bun:"user_role,notnull" json:"role,omitempty"`
	PasswordHash  string     `bun:"password_hash,notnull" json:"-"`
	IsActive      bool       `bun:"is_active,notnull" json:"is_active"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
}

// AlumniProfile is the directory record an alumni account maintains.
// One profile per user, enforced by a unique index on user_id.
type AlumniProfile struct {
	bun.BaseModel   `bun:"table:alumni_profiles,alias:prf"`
	ID              uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	UserID          uuid.UUID  `bun:"user_id,notnull,unique,type:uuid" json:"user_id,omitempty"`
	FullName        string     `bun:"full_name,notnull" json:"full_name,omitempty"`
	Phone           string     `bun:"phone" json:"phone,omitempty"`
	GraduationYear  int        `bun:"graduation_year,notnull" json:"graduation_year,omitempty"`
	Degree          string     `bun:"degree,notnull" json:"degree,omitempty"`
	Department      string     `bun:"department,notnull" json:"department,omitempty"`
	CurrentPosition string     `bun:"current_position,nullzero" json:"current_position,omitempty"`
	CurrentCompany  string     `bun:"current_company,nullzero" json:"current_company,omitempty"`
	LinkedinURL     string     `bun:"linkedin_url,nullzero" json:"linkedin_url,omitempty"`
	Bio             string     `bun:"bio,nullzero" json:"bio,omitempty"`
	CreatedAt       *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt       *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// Event is a directory event, creatable by admins and visible to any
// authenticated member.
type Event struct {
	bun.BaseModel `bun:"table:events,alias:evt"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Title         string     `bun:"title,notnull" json:"title,omitempty"`
	Description   string     `bun:"description,notnull" json:"description,omitempty"`
	Date          time.Time  `bun:"date,notnull" json:"date"`
	Location      string     `bun:"location,notnull" json:"location,omitempty"`
	CreatedBy     uuid.UUID  `bun:"created_by,notnull,type:uuid" json:"created_by,omitempty"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
}
