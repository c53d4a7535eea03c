package service

import (
	"errors"

	"login-panel/database"
	"login-panel/database/model"
	"login-panel/logger"
	"login-panel/util/crypto"
	"login-panel/web/entity"
)

// Authentication failures. Controllers collapse both into one generic login
// message so a caller cannot probe which field was wrong.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrCredentialMismatch = errors.New("credential mismatch")
)

type UserService struct{}

func (s *UserService) CheckLoginIdExist(loginId string) (bool, error) {
	var count int64
	err := database.GetDB().Model(model.User{}).
		Where("login_id = ?", loginId).
		Count(&count).
		Error
	return count > 0, err
}

func (s *UserService) CheckNicknameExist(nickname string) (bool, error) {
	var count int64
	err := database.GetDB().Model(model.User{}).
		Where("nickname = ?", nickname).
		Count(&count).
		Error
	return count > 0, err
}

// ValidateJoin runs every signup check before failing so all violations are
// reported together. Msg values are message IDs localized by the controller.
func (s *UserService) ValidateJoin(loginId, nickname, password, passwordCheck string) ([]entity.FieldError, error) {
	var fieldErrors []entity.FieldError

	exist, err := s.CheckLoginIdExist(loginId)
	if err != nil {
		return nil, err
	}
	if exist {
		fieldErrors = append(fieldErrors, entity.FieldError{Field: "loginId", Msg: "join.duplicateLoginId"})
	}

	exist, err = s.CheckNicknameExist(nickname)
	if err != nil {
		return nil, err
	}
	if exist {
		fieldErrors = append(fieldErrors, entity.FieldError{Field: "nickname", Msg: "join.duplicateNickname"})
	}

	if password != passwordCheck {
		fieldErrors = append(fieldErrors, entity.FieldError{Field: "passwordCheck", Msg: "join.passwordMismatch"})
	}

	return fieldErrors, nil
}

// Register inserts a new USER-role account. When hashPassword is set the
// credential is stored as a bcrypt hash, otherwise verbatim; the login modes
// that mimic framework-managed auth register hashed accounts.
func (s *UserService) Register(loginId, password, nickname string, hashPassword bool) (*model.User, error) {
	stored := password
	if hashPassword {
		var err error
		stored, err = crypto.HashPasswordAsBcrypt(password)
		if err != nil {
			return nil, err
		}
	}

	user := &model.User{
		LoginId:  loginId,
		Password: stored,
		Nickname: nickname,
		Role:     model.RoleUser,
	}
	if err := database.GetDB().Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate verifies a presented credential against the stored one. The
// stored value decides the comparison scheme: bcrypt hashes are compared with
// bcrypt, anything else with constant-time equality. Read-only.
func (s *UserService) Authenticate(loginId string, password string) (*model.User, error) {
	user, err := s.GetUserByLoginId(loginId)
	if err != nil {
		return nil, err
	}

	if crypto.IsBcryptHash(user.Password) {
		if !crypto.CheckPasswordHash(user.Password, password) {
			return nil, ErrCredentialMismatch
		}
	} else if !crypto.EqualConstantTime(user.Password, password) {
		return nil, ErrCredentialMismatch
	}

	return user, nil
}

func (s *UserService) GetUserById(id int) (*model.User, error) {
	db := database.GetDB()

	user := &model.User{}
	err := db.Model(model.User{}).
		Where("id = ?", id).
		First(user).
		Error
	if database.IsNotFound(err) {
		return nil, ErrUserNotFound
	} else if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) GetUserByLoginId(loginId string) (*model.User, error) {
	db := database.GetDB()

	user := &model.User{}
	err := db.Model(model.User{}).
		Where("login_id = ?", loginId).
		First(user).
		Error
	if database.IsNotFound(err) {
		return nil, ErrUserNotFound
	} else if err != nil {
		return nil, err
	}
	return user, nil
}

// GetAllUsers returns every registered account, used by the credentials audit job.
func (s *UserService) GetAllUsers() ([]*model.User, error) {
	db := database.GetDB()

	users := make([]*model.User, 0)
	err := db.Model(model.User{}).Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// UpdatePassword replaces an account's credential with a bcrypt hash of the
// new password. Used by the CLI, not exposed over HTTP.
func (s *UserService) UpdatePassword(loginId string, password string) error {
	user, err := s.GetUserByLoginId(loginId)
	if err != nil {
		return err
	}

	hashed, err := crypto.HashPasswordAsBcrypt(password)
	if err != nil {
		return err
	}

	err = database.GetDB().Model(model.User{}).
		Where("id = ?", user.Id).
		Update("password", hashed).
		Error
	if err != nil {
		return err
	}
	logger.Infof("password updated for %s", loginId)
	return nil
}
