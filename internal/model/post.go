package model

import "time"

// Post is a blog entry owned by exactly one author. ImagePath, when set, is a
// forward-slash path under the upload directory ("uploads/<file>") and names a
// file that exists on disk until it is superseded or the post is deleted.
type Post struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Title     string    `json:"title" gorm:"size:255;not null"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	ImagePath string    `json:"imagePath,omitempty" gorm:"size:512"`
	AuthorID  uint      `json:"authorId" gorm:"not null;index"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Author *Author `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
}
