package models

type Theme struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:128;uniqueIndex;not null" json:"name"`

	// Relationships
	Jokes []Joke `gorm:"foreignKey:ThemeID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}
