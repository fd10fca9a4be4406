package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/replyradar/replyradar/config"
	"github.com/replyradar/replyradar/interfaces"
	"github.com/replyradar/replyradar/internal/models"
)

type Repositories struct {
	MailboxRepository        interfaces.MailboxRepository
	ThreadRepository         interfaces.ThreadRepository
	MessageRepository        interfaces.MessageRepository
	ClassificationRepository interfaces.ClassificationRepository
}

func InitRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		MailboxRepository:        NewMailboxRepository(db),
		ThreadRepository:         NewThreadRepository(db),
		MessageRepository:        NewMessageRepository(db),
		ClassificationRepository: NewClassificationRepository(db),
	}
}

func MigrateDB(dbConfig *config.DatabaseConfig, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	// Migrations run on a constrained pool, restored afterwards.
	sqlDB.SetMaxOpenConns(5)

	err = db.AutoMigrate(
		&models.Mailbox{},
		&models.Thread{},
		&models.Message{},
		&models.Classification{},
	)

	sqlDB.SetMaxIdleConns(dbConfig.MaxIdleConn)
	sqlDB.SetMaxOpenConns(dbConfig.MaxConn)
	sqlDB.SetConnMaxLifetime(time.Duration(dbConfig.ConnMaxLifetime) * time.Minute)

	return err
}
