package domain

import (
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Person is a process-wide user. Tours reference people only through
// event assignments.
type Person struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"passwordHash,omitempty"`
	Status       PersonStatus `json:"status"`
	Role         Role         `json:"role"`
	AvatarURL    string       `json:"avatarUrl"`
}

// IsManager reports whether the person holds the Tour Manager role.
func (p Person) IsManager() bool {
	return p.Role == RoleTourManager
}

// HasEmail compares emails case-insensitively.
func (p Person) HasEmail(email string) bool {
	return strings.EqualFold(strings.TrimSpace(p.Email), strings.TrimSpace(email))
}

// CheckPassword reports whether plain matches the stored hash. People without
// a password (pending invitations) never match.
func (p Person) CheckPassword(plain string) bool {
	if p.PasswordHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(plain)) == nil
}

// HashPassword hashes plain with the given bcrypt cost. A cost of zero uses bcrypt.DefaultCost.
func HashPassword(plain string, cost int) (string, error) {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// FindPerson returns the person with the given ID.
func FindPerson(people []Person, id string) (Person, bool) {
	for _, p := range people {
		if p.ID == id {
			return p, true
		}
	}
	return Person{}, false
}

// PersonName resolves a person ID to a display name, "Unknown" when dangling.
func PersonName(people []Person, id string) string {
	if p, ok := FindPerson(people, id); ok {
		return p.Name
	}
	return "Unknown"
}
