package job

import (
	"login-panel/logger"
	"login-panel/web/session"
)

// ClearSessionsJob prunes server-side sessions past their inactivity
// deadline so abandoned logins do not pile up in memory.
type ClearSessionsJob struct {
	registry *session.Registry
}

func NewClearSessionsJob(registry *session.Registry) *ClearSessionsJob {
	return &ClearSessionsJob{registry: registry}
}

func (j *ClearSessionsJob) Run() {
	before := j.registry.Len()
	j.registry.RemoveExpired()
	if removed := before - j.registry.Len(); removed > 0 {
		logger.Debugf("pruned %d expired sessions", removed)
	}
}
