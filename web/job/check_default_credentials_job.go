// Package job contains the scheduled background jobs of the panel.
package job

import (
	"login-panel/logger"
	"login-panel/util/crypto"
	"login-panel/web/service"
)

const seededPassword = "1234"

// CheckDefaultCredentialsJob warns about accounts that still authenticate
// with the seeded demo password. The panel is a teaching artifact; the nag
// is the only enforcement.
type CheckDefaultCredentialsJob struct {
	userService service.UserService
}

func NewCheckDefaultCredentialsJob() *CheckDefaultCredentialsJob {
	return new(CheckDefaultCredentialsJob)
}

func (j *CheckDefaultCredentialsJob) Run() {
	users, err := j.userService.GetAllUsers()
	if err != nil {
		logger.Warning("check default credentials:", err)
		return
	}

	for _, user := range users {
		usesDefault := false
		if crypto.IsBcryptHash(user.Password) {
			usesDefault = crypto.CheckPasswordHash(user.Password, seededPassword)
		} else {
			usesDefault = user.Password == seededPassword
		}
		if usesDefault {
			logger.Warningf("account %q still uses the default password", user.LoginId)
		}
	}
}
