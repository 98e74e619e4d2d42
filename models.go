package devconnect

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// User is the credential record
type User struct {
	bun.BaseModel `bun:"table:users,alias:usr"`
	ID            uuid.UUID  `bun:"id,pk,type:uuid" json:"_id"`
	Name          string     `bun:"name,notnull" json:"name"`
	Email         string     `bun:"email,notnull,unique" json:"email"`
	PasswordHash  string     `bun:"password_hash,notnull" json:"-"`
	Avatar        string     `bun:"avatar" json:"avatar,omitempty"`
	CreatedAt     *time.Time `bun:"date,nullzero,notnull,default:current_timestamp" json:"date,omitempty"`
}

// Profile is the public developer profile owned by a user
type Profile struct {
	bun.BaseModel  `bun:"table:profiles,alias:prf"`
	ID             uuid.UUID    `bun:"id,pk,type:uuid" json:"_id"`
	UserID         uuid.UUID    `bun:"user_id,notnull,unique,type:uuid" json:"-"`
	User           *ProfileUser `bun:"-" json:"user,omitempty"`
	Company        string       `bun:"company" json:"company,omitempty"`
	Website        string       `bun:"website" json:"website,omitempty"`
	Location       string       `bun:"location" json:"location,omitempty"`
	Status         string       `bun:"status,notnull" json:"status"`
	Skills         []string     `bun:"skills,type:text" json:"skills"`
	Bio            string       `bun:"bio" json:"bio,omitempty"`
	GithubUsername string       `bun:"github_username" json:"githubusername,omitempty"`
	CreatedAt      *time.Time   `bun:"date,nullzero,notnull,default:current_timestamp" json:"date,omitempty"`
}

// ProfileUser is the slice of the owning user embedded in profile responses
type ProfileUser struct {
	ID     uuid.UUID `json:"_id"`
	Name   string    `json:"name"`
	Avatar string    `json:"avatar,omitempty"`
}

// NormalizeEmail is the canonical form used for lookups and storage
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SplitSkills turns "go, sql ,  docker" into a clean list
func SplitSkills(raw string) []string {
	out := []string{}
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
