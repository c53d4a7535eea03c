package service

import (
	"testing"

	"login-panel/database/model"

	"github.com/stretchr/testify/assert"
)

func TestAuthorize(t *testing.T) {
	admin := &model.User{Id: 1, LoginId: "admin1", Role: model.RoleAdmin}
	user := &model.User{Id: 2, LoginId: "user1", Role: model.RoleUser}

	tests := []struct {
		name     string
		user     *model.User
		level    AccessLevel
		expected bool
	}{
		{"public allows anonymous", nil, Public, true},
		{"public allows user", user, Public, true},
		{"public allows admin", admin, Public, true},
		{"authenticated denies anonymous", nil, Authenticated, false},
		{"authenticated allows user", user, Authenticated, true},
		{"authenticated allows admin", admin, Authenticated, true},
		{"admin only denies anonymous", nil, AdminOnly, false},
		{"admin only denies user", user, AdminOnly, false},
		{"admin only allows admin", admin, AdminOnly, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Authorize(tt.user, tt.level))
		})
	}
}
