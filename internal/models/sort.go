package models

// BookSortKey selects the column a book list is ordered by.
type BookSortKey string

const (
	SortByTitle    BookSortKey = "title"
	SortByReadDate BookSortKey = "read_date"
)

// BookSort orders a book list. Ties keep storage order in both directions.
type BookSort struct {
	Key       BookSortKey `json:"key"`
	Ascending bool        `json:"ascending"`
}

// DefaultBookSort is what a book list starts with: most recently read first.
var DefaultBookSort = BookSort{Key: SortByReadDate, Ascending: false}

// ParseBookSortKey returns the key for s, falling back to SortByReadDate.
func ParseBookSortKey(s string) BookSortKey {
	switch BookSortKey(s) {
	case SortByTitle:
		return SortByTitle
	default:
		return SortByReadDate
	}
}

// BookFilter narrows and orders a book list.
type BookFilter struct {
	Sort BookSort `json:"sort"`
	// Status restricts the list to one read status when set.
	Status *ReadStatus `json:"status,omitempty"`
}
