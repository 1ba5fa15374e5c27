package model

import (
	"strings"
	"time"
)

// AvatarCount is the size of the fixed avatar set a one-byte profile indexes into.
const AvatarCount = 6

// Nurse is a directory entry. ID is zero until the backend assigns one.
type Nurse struct {
	ID        int64     `json:"id,omitempty" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:128;not null;index"`
	Surname   string    `json:"surname" gorm:"size:128;not null"`
	Email     string    `json:"email" gorm:"uniqueIndex;size:256;not null"`
	Username  string    `json:"user" gorm:"column:username;uniqueIndex;size:128;not null"`
	Password  string    `json:"password" gorm:"size:256;not null"`
	Profile   []byte    `json:"profile,omitempty"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// HasID reports whether the record has been persisted by a backend.
func (n Nurse) HasID() bool {
	return n.ID != 0
}

// FullName returns "name surname".
func (n Nurse) FullName() string {
	return n.Name + " " + n.Surname
}

// AvatarIndex maps a single-byte profile to an index in the avatar set.
// Missing, multi-byte (image) or out-of-range profiles map to 0.
func (n Nurse) AvatarIndex() int {
	if len(n.Profile) != 1 {
		return 0
	}
	idx := int(n.Profile[0])
	if idx < 0 || idx >= AvatarCount {
		return 0
	}
	return idx
}

// HasImage reports whether Profile carries image bytes rather than an avatar index.
func (n Nurse) HasImage() bool {
	return len(n.Profile) > 1
}

// Clone returns a deep copy so callers can't alias the profile bytes.
func (n Nurse) Clone() Nurse {
	if n.Profile != nil {
		n.Profile = append([]byte(nil), n.Profile...)
	}
	return n
}

// Public returns a copy with credentials removed, for responses.
func (n Nurse) Public() Nurse {
	c := n.Clone()
	c.Password = ""
	return c
}

// Normalized trims the identity fields the way the registration form does.
// Password is kept verbatim.
func (n Nurse) Normalized() Nurse {
	n.Name = strings.TrimSpace(n.Name)
	n.Surname = strings.TrimSpace(n.Surname)
	n.Email = strings.TrimSpace(n.Email)
	n.Username = strings.TrimSpace(n.Username)
	return n
}
