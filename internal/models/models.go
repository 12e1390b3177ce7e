package models

import "time"

type Author struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Memo        *string `json:"memo,omitempty"`
	IsFavourite bool    `json:"is_favourite"`
}

type Genre struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	IsFavourite bool   `json:"is_favourite"`
}

// Book is a book joined with its author, genre and quotes.
type Book struct {
	ID       uint       `json:"id"`
	Title    string     `json:"title"`
	ReadDate time.Time  `json:"read_date"`
	Memo     string     `json:"memo"`
	Thought  string     `json:"thought"`
	Rating   int        `json:"rating"`
	Author   *Author    `json:"author,omitempty"`
	Genre    *Genre     `json:"genre,omitempty"`
	Status   ReadStatus `json:"status"`
	Quotes   []Quote    `json:"quotes"`
}

// Quote is a quote joined with the title and author of its book.
type Quote struct {
	ID         uint      `json:"id"`
	BookID     uint      `json:"book_id"`
	BookTitle  string    `json:"book_title"`
	AuthorName string    `json:"author_name,omitempty"`
	Page       int       `json:"page"`
	Text       string    `json:"text"`
	Thought    string    `json:"thought"`
	CreatedAt  time.Time `json:"created_at"`
}

// BookForQuote is the lightweight projection offered while picking the
// book a quote belongs to.
type BookForQuote struct {
	ID           uint   `json:"id"`
	Title        string `json:"title"`
	DisplayTitle string `json:"display_title"`
}

type AuthorInput struct {
	Name string  `json:"name"`
	Memo *string `json:"memo,omitempty"`
}

type GenreInput struct {
	Name string `json:"name"`
}

type BookInput struct {
	Title    string     `json:"title"`
	ReadDate time.Time  `json:"read_date"`
	Memo     string     `json:"memo"`
	Thought  string     `json:"thought"`
	Rating   int        `json:"rating"`
	AuthorID *string    `json:"author_id,omitempty"`
	GenreID  *string    `json:"genre_id,omitempty"`
	Status   ReadStatus `json:"status"`
}

type QuoteInput struct {
	BookID  uint   `json:"book_id"`
	Page    int    `json:"page"`
	Text    string `json:"text"`
	Thought string `json:"thought"`
	// CreatedAt overrides the insert timestamp when set.
	CreatedAt *time.Time `json:"created_at,omitempty"`
}
