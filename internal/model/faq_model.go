package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Faq struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Question  string         `gorm:"type:text;not null"`
	Answer    string         `gorm:"type:text;not null"`
	Category  string         `gorm:"type:varchar(100);index"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Faq) TableName() string {
	return "faqs"
}
