package service

import (
	"os"
	"testing"

	"login-panel/database"
	"login-panel/database/model"
	"login-panel/util/crypto"

	"github.com/stretchr/testify/assert"
)

func setup() {
	dbPath := "test.db"
	os.Remove(dbPath)
	database.InitDB(dbPath)
}

func teardown() {
	db, _ := database.GetDB().DB()
	db.Close()
	os.Remove("test.db")
}

func TestAuthenticateSeededUsers(t *testing.T) {
	setup()
	defer teardown()

	service := UserService{}

	// Plain-credential account
	user, err := service.Authenticate("admin1", "1234")
	assert.NoError(t, err)
	assert.Equal(t, "admin1", user.LoginId)
	assert.Equal(t, model.RoleAdmin, user.Role)

	// Hashed-credential account
	user, err = service.Authenticate("admin2", "1234")
	assert.NoError(t, err)
	assert.True(t, crypto.IsBcryptHash(user.Password))

	// Wrong password fails the same way for both schemes
	_, err = service.Authenticate("admin1", "wrong")
	assert.ErrorIs(t, err, ErrCredentialMismatch)
	_, err = service.Authenticate("admin2", "wrong")
	assert.ErrorIs(t, err, ErrCredentialMismatch)

	// Unknown account
	_, err = service.Authenticate("nobody", "1234")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestRegisterAndLookup(t *testing.T) {
	setup()
	defer teardown()

	service := UserService{}

	user, err := service.Register("alice", "pw1", "Alice", false)
	assert.NoError(t, err)
	assert.Equal(t, model.RoleUser, user.Role)
	assert.Equal(t, "pw1", user.Password)

	got, err := service.GetUserById(user.Id)
	assert.NoError(t, err)
	assert.Equal(t, "alice", got.LoginId)

	got, err = service.GetUserByLoginId("alice")
	assert.NoError(t, err)
	assert.Equal(t, user.Id, got.Id)

	_, err = service.GetUserById(99999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestRegisterHashed(t *testing.T) {
	setup()
	defer teardown()

	service := UserService{}

	user, err := service.Register("bob", "pw2", "Bob", true)
	assert.NoError(t, err)
	assert.True(t, crypto.IsBcryptHash(user.Password))
	assert.NotEqual(t, "pw2", user.Password)

	got, err := service.Authenticate("bob", "pw2")
	assert.NoError(t, err)
	assert.Equal(t, user.Id, got.Id)
}

func TestValidateJoinCollectsAllErrors(t *testing.T) {
	setup()
	defer teardown()

	service := UserService{}

	// admin1 and its nickname are seeded; mismatched confirmation on top, so
	// all three violations must come back together.
	fieldErrors, err := service.ValidateJoin("admin1", "관리자1", "pw", "different")
	assert.NoError(t, err)
	assert.Len(t, fieldErrors, 3)

	fields := make([]string, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		fields = append(fields, fe.Field)
	}
	assert.Contains(t, fields, "loginId")
	assert.Contains(t, fields, "nickname")
	assert.Contains(t, fields, "passwordCheck")

	// Nothing was inserted
	exist, err := service.CheckLoginIdExist("admin1")
	assert.NoError(t, err)
	assert.True(t, exist)

	var count int64
	database.GetDB().Model(model.User{}).Count(&count)
	assert.EqualValues(t, 4, count)
}

func TestValidateJoinClean(t *testing.T) {
	setup()
	defer teardown()

	service := UserService{}

	fieldErrors, err := service.ValidateJoin("carol", "Carol", "pw", "pw")
	assert.NoError(t, err)
	assert.Empty(t, fieldErrors)
}

func TestUpdatePassword(t *testing.T) {
	setup()
	defer teardown()

	service := UserService{}

	err := service.UpdatePassword("user1", "newpass")
	assert.NoError(t, err)

	// Stored as a hash now, old password no longer works
	user, err := service.Authenticate("user1", "newpass")
	assert.NoError(t, err)
	assert.True(t, crypto.IsBcryptHash(user.Password))

	_, err = service.Authenticate("user1", "1234")
	assert.ErrorIs(t, err, ErrCredentialMismatch)
}
