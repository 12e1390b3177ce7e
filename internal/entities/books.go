package entities

import (
	"time"
)

// Author is identified by a natural key built from its name and optional memo.
// See AuthorIdentity.
type Author struct {
	ID          string    `gorm:"primaryKey;size:512" json:"id"`
	Name        string    `gorm:"index;size:256;not null" json:"name"`
	Memo        *string   `gorm:"size:256" json:"memo,omitempty"`
	IsFavourite bool      `gorm:"default:false" json:"is_favourite"`
	CreatedAt   time.Time `json:"created_at"`
}

// Genre is a named tag; its name is its identity.
type Genre struct {
	ID          string    `gorm:"primaryKey;size:256" json:"id"`
	Name        string    `gorm:"size:256;not null" json:"name"`
	IsFavourite bool      `gorm:"default:false" json:"is_favourite"`
	CreatedAt   time.Time `json:"created_at"`
}

type Book struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	Title    string    `gorm:"index;size:512" json:"title"`
	ReadDate time.Time `gorm:"index" json:"read_date"`
	Memo     string    `gorm:"type:text" json:"memo"`
	Thought  string    `gorm:"type:text" json:"thought"`
	Rating   int       `json:"rating"`

	// Removing an author or genre clears the reference instead of removing the book.
	AuthorID *string `gorm:"index;size:512" json:"author_id,omitempty"`
	Author   *Author `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"author,omitempty"`
	GenreID  *string `gorm:"index;size:256" json:"genre_id,omitempty"`
	Genre    *Genre  `gorm:"foreignKey:GenreID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"genre,omitempty"`

	// Stored as the raw status name, see models.ParseReadStatus.
	Status string `gorm:"size:20;default:'have_read'" json:"status"`

	Quotes []Quote `gorm:"foreignKey:BookID;constraint:OnDelete:CASCADE;" json:"quotes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Quote struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	BookID  uint   `gorm:"index;not null" json:"book_id"`
	Book    *Book  `gorm:"foreignKey:BookID" json:"-"`
	Page    int    `json:"page"`
	Quote   string `gorm:"type:text" json:"quote"`
	Thought string `gorm:"type:text" json:"thought"`

	// Set by gorm at insert time unless the caller supplies one.
	CreatedAt time.Time `json:"created_at"`
}

func (Author) TableName() string {
	return "authors"
}

func (Genre) TableName() string {
	return "genres"
}

func (Book) TableName() string {
	return "books"
}

func (Quote) TableName() string {
	return "quotes"
}

// AuthorIdentity derives the natural key of an author. Two authors with the
// same name and no memo share one identity.
func AuthorIdentity(name string, memo *string) string {
	if memo == nil {
		return name
	}
	return name + *memo
}
