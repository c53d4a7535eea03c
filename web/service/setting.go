package service

import (
	"strconv"
	"strings"
	"time"

	"login-panel/database"
	"login-panel/database/model"
	"login-panel/util/common"
	"login-panel/util/random"
)

// Runtime settings live in the settings table; anything not stored yet falls
// back to this map. The JWT secret default mirrors the demo value the panel
// ships with and is fixed for the process lifetime once read.
var defaultValueMap = map[string]string{
	"webListen":        "",
	"webDomain":        "",
	"webPort":          "8080",
	"webBasePath":      "/",
	"sessionSecret":    random.Seq(32),
	"sessionMaxAge":    "1800",
	"cookieMaxAge":     "3600",
	"jwtSecret":        "my-secret-key-123123",
	"jwtExpireMinutes": "60",
	"timeLocation":     "Asia/Seoul",
}

type SettingService struct{}

func (s *SettingService) GetListen() (string, error) {
	return s.getString("webListen")
}

func (s *SettingService) GetWebDomain() (string, error) {
	return s.getString("webDomain")
}

func (s *SettingService) GetPort() (int, error) {
	return s.getInt("webPort")
}

func (s *SettingService) SetPort(port int) error {
	return s.setInt("webPort", port)
}

func (s *SettingService) GetBasePath() (string, error) {
	basePath, err := s.getString("webBasePath")
	if err != nil {
		return "", err
	}
	if !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}
	if !strings.HasSuffix(basePath, "/") {
		basePath += "/"
	}
	return basePath, nil
}

// GetSessionSecret returns the key the framework session store signs its
// cookies with. The generated default is persisted on first read so sessions
// survive a restart.
func (s *SettingService) GetSessionSecret() ([]byte, error) {
	secret, err := s.getString("sessionSecret")
	if secret == defaultValueMap["sessionSecret"] {
		if saveErr := s.saveSetting("sessionSecret", secret); saveErr != nil {
			return nil, saveErr
		}
	}
	return []byte(secret), err
}

// GetSessionMaxAge returns the server-side session inactivity timeout in seconds.
func (s *SettingService) GetSessionMaxAge() (int, error) {
	return s.getInt("sessionMaxAge")
}

// GetCookieMaxAge returns the plain cookie artifact lifetime in seconds.
func (s *SettingService) GetCookieMaxAge() (int, error) {
	return s.getInt("cookieMaxAge")
}

func (s *SettingService) GetJWTSecret() ([]byte, error) {
	secret, err := s.getString("jwtSecret")
	return []byte(secret), err
}

func (s *SettingService) GetJWTExpire() (time.Duration, error) {
	minutes, err := s.getInt("jwtExpireMinutes")
	if err != nil {
		return 0, err
	}
	return time.Duration(minutes) * time.Minute, nil
}

func (s *SettingService) GetTimeLocation() (*time.Location, error) {
	l, err := s.getString("timeLocation")
	if err != nil {
		return nil, err
	}
	return time.LoadLocation(l)
}

func (s *SettingService) ResetSettings() error {
	db := database.GetDB()
	return db.Where("1 = 1").Delete(model.Setting{}).Error
}

func (s *SettingService) getSetting(key string) (*model.Setting, error) {
	db := database.GetDB()
	setting := &model.Setting{}
	err := db.Model(model.Setting{}).Where("key = ?", key).First(setting).Error
	if err != nil {
		return nil, err
	}
	return setting, nil
}

func (s *SettingService) saveSetting(key string, value string) error {
	setting, err := s.getSetting(key)
	db := database.GetDB()
	if database.IsNotFound(err) {
		return db.Create(&model.Setting{
			Key:   key,
			Value: value,
		}).Error
	} else if err != nil {
		return err
	}
	setting.Key = key
	setting.Value = value
	return db.Save(setting).Error
}

func (s *SettingService) getString(key string) (string, error) {
	setting, err := s.getSetting(key)
	if database.IsNotFound(err) {
		value, ok := defaultValueMap[key]
		if !ok {
			return "", common.NewErrorf("key <%v> not in defaultValueMap", key)
		}
		return value, nil
	} else if err != nil {
		return "", err
	}
	return setting.Value, nil
}

func (s *SettingService) setString(key string, value string) error {
	return s.saveSetting(key, value)
}

func (s *SettingService) getInt(key string) (int, error) {
	str, err := s.getString(key)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(str)
}

func (s *SettingService) setInt(key string, value int) error {
	return s.setString(key, strconv.Itoa(value))
}
