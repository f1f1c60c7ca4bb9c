package models

import "time"

type Joke struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	ThemeID   uint      `gorm:"not null;index" json:"theme_id"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`

	// Relationships
	User  User  `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
	Theme Theme `gorm:"foreignKey:ThemeID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}
