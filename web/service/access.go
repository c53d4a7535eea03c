package service

import "login-panel/database/model"

// AccessLevel is the authorization tier a route demands.
type AccessLevel int

const (
	Public AccessLevel = iota
	Authenticated
	AdminOnly
)

// Authorize is the per-request access decision: a pure function of the
// resolved principal (nil for anonymous) and the required level. No state is
// carried between calls.
func Authorize(user *model.User, level AccessLevel) bool {
	switch level {
	case Public:
		return true
	case Authenticated:
		return user != nil
	case AdminOnly:
		return user != nil && user.IsAdmin()
	default:
		return false
	}
}
