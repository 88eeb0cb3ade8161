package models

import (
	"time"

	"github.com/google/uuid"
)

type SubscriberModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Email        string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_subscribers_email"`
	IsActive     bool      `gorm:"default:true;not null"`
	SubscribedAt time.Time `gorm:"not null"`
}

func (SubscriberModel) TableName() string {
	return "newsletter_subscribers"
}

type ContactMessageModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name      string    `gorm:"type:varchar(100);not null"`
	Email     string    `gorm:"type:varchar(255);not null"`
	Message   string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"not null"`
}

func (ContactMessageModel) TableName() string {
	return "contact_messages"
}
