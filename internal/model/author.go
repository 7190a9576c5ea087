package model

import "time"

// Author is a content owner. An author has zero or more posts; deleting an
// author does not touch its posts.
type Author struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:255;not null"`
	Email     string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	Number    string    `json:"number" gorm:"uniqueIndex;size:50;not null"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Posts []Post `json:"posts,omitempty" gorm:"foreignKey:AuthorID"`
}
