package model

import "time"

// Status is the availability of a book.
type Status string

const (
	StatusAvailable Status = "AVAILABLE"
	StatusBorrowed  Status = "BORROWED"
	StatusReserved  Status = "RESERVED"
)

// Statuses lists every status in display order.
var Statuses = []Status{StatusAvailable, StatusBorrowed, StatusReserved}

func (s Status) IsValid() bool {
	switch s {
	case StatusAvailable, StatusBorrowed, StatusReserved:
		return true
	}
	return false
}

func (s Status) String() string {
	return string(s)
}

// Book is a catalog entry.
type Book struct {
	ID              int64     `json:"id" db:"id"`
	Title           string    `json:"title" db:"title"`
	Author          string    `json:"author" db:"author"`
	ISBN            string    `json:"isbn" db:"isbn"`
	PublicationYear int       `json:"publicationYear" db:"publication_year"`
	Status          Status    `json:"status" db:"status"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
}

// LibraryStats is the dashboard aggregate.
type LibraryStats struct {
	TotalBooks     int64 `json:"totalBooks"`
	AvailableBooks int64 `json:"availableBooks"`
	BorrowedBooks  int64 `json:"borrowedBooks"`
	ActiveLoans    int64 `json:"activeLoans"`
	OverdueLoans   int64 `json:"overdueLoans"`
}

// StatsCacheKey holds the cached LibraryStats. Every book or loan mutation deletes it.
const StatsCacheKey = "stats"

// sortColumns maps the public sort field names to columns.
var sortColumns = map[string]string{
	"id":              "id",
	"title":           "title",
	"author":          "author",
	"isbn":            "isbn",
	"publicationYear": "publication_year",
	"status":          "status",
	"createdAt":       "created_at",
}

// SortColumn resolves a sort field; ok is false for unknown fields.
func SortColumn(field string) (string, bool) {
	col, ok := sortColumns[field]
	return col, ok
}
