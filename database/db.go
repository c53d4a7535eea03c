// Package database manages the sqlite connection, migrations and seed data.
package database

import (
	"io/fs"
	"log"
	"os"
	"path"

	"login-panel/config"
	"login-panel/database/model"
	"login-panel/util/crypto"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var db *gorm.DB

// Demo accounts created on first start. Two keep their password verbatim,
// two store a bcrypt hash, so both verification schemes stay exercised.
const defaultPassword = "1234"

func initModels() error {
	models := []any{
		&model.User{},
		&model.Setting{},
	}
	for _, m := range models {
		if err := db.AutoMigrate(m); err != nil {
			log.Printf("Error auto migrating model: %v", err)
			return err
		}
	}
	return nil
}

func initUsers() error {
	empty, err := isTableEmpty("users")
	if err != nil {
		log.Printf("Error checking if users table is empty: %v", err)
		return err
	}
	if !empty {
		return nil
	}

	hashed, err := crypto.HashPasswordAsBcrypt(defaultPassword)
	if err != nil {
		return err
	}

	users := []*model.User{
		{LoginId: "admin1", Password: defaultPassword, Nickname: "관리자1", Role: model.RoleAdmin},
		{LoginId: "user1", Password: defaultPassword, Nickname: "User1", Role: model.RoleUser},
		{LoginId: "admin2", Password: hashed, Nickname: "관리자", Role: model.RoleAdmin},
		{LoginId: "user", Password: hashed, Nickname: "유저1", Role: model.RoleUser},
	}
	return db.Create(users).Error
}

func isTableEmpty(tableName string) (bool, error) {
	var count int64
	err := db.Table(tableName).Count(&count).Error
	return count == 0, err
}

func InitDB(dbPath string) error {
	dir := path.Dir(dbPath)
	err := os.MkdirAll(dir, fs.ModePerm)
	if err != nil {
		return err
	}

	var gormLogger logger.Interface
	if config.IsDebug() {
		gormLogger = logger.Default
	} else {
		gormLogger = logger.Discard
	}

	c := &gorm.Config{
		Logger:                 gormLogger,
		SkipDefaultTransaction: true,
		PrepareStmt:            true,
	}

	dsn := dbPath + "?cache=shared&_journal_mode=WAL&_synchronous=NORMAL"
	db, err = gorm.Open(sqlite.Open(dsn), c)
	if err != nil {
		return err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	_, err = sqlDB.Exec("PRAGMA foreign_keys = ON;")
	if err != nil {
		return err
	}

	if err := initModels(); err != nil {
		return err
	}
	return initUsers()
}

func CloseDB() error {
	if db != nil {
		if err := Checkpoint(); err != nil {
			log.Printf("error executing checkpoint: %v", err)
		}

		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
	return nil
}

func GetDB() *gorm.DB {
	return db
}

func IsNotFound(err error) bool {
	return err == gorm.ErrRecordNotFound
}

func Checkpoint() error {
	// Update WAL
	return db.Exec("PRAGMA wal_checkpoint;").Error
}
