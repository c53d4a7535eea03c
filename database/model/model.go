// Package model defines the database entities of the login panel.
package model

// User roles. Two tiers only: regular users and administrators.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// User is a registered account. LoginId and Nickname are unique across all
// users. Password holds either the verbatim credential or a bcrypt hash,
// depending on how the account was registered.
type User struct {
	Id       int    `json:"id" gorm:"primaryKey;autoIncrement"`
	LoginId  string `json:"loginId" gorm:"uniqueIndex;not null"`
	Password string `json:"-" gorm:"not null"`
	Nickname string `json:"nickname" gorm:"uniqueIndex;not null"`
	Role     string `json:"role" gorm:"not null"`
}

// IsAdmin reports whether the user holds the ADMIN role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Setting is a key/value pair of runtime panel configuration.
type Setting struct {
	Id    int    `json:"id" gorm:"primaryKey;autoIncrement"`
	Key   string `json:"key" gorm:"uniqueIndex"`
	Value string `json:"value"`
}
