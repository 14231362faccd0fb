package model

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// BookRequest is the body of create and update calls, and the book form.
// ID is only set by the form to distinguish an edit from a create.
type BookRequest struct {
	ID              int64  `json:"-" form:"id"`
	Title           string `json:"title" form:"title"`
	Author          string `json:"author" form:"author"`
	ISBN            string `json:"isbn" form:"isbn"`
	PublicationYear int    `json:"publicationYear" form:"publicationYear"`
	Status          Status `json:"status,omitempty" form:"status"`
}

// Normalize trims surrounding whitespace of the text fields.
func (r *BookRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Author = strings.TrimSpace(r.Author)
	r.ISBN = strings.TrimSpace(r.ISBN)
	r.Status = Status(strings.ToUpper(strings.TrimSpace(string(r.Status))))
}

func (r BookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.RuneLength(1, 150),
		),
		validation.Field(&r.Author,
			validation.Required.Error("author is required"),
			validation.RuneLength(1, 100),
		),
		validation.Field(&r.ISBN,
			validation.Required.Error("isbn is required"),
			validation.RuneLength(13, 13).Error("isbn must be exactly 13 characters"),
		),
		validation.Field(&r.PublicationYear,
			validation.Required.Error("publication year is required"),
			validation.Min(1000).Error("publication year must be between 1000 and 2100"),
			validation.Max(2100).Error("publication year must be between 1000 and 2100"),
		),
		validation.Field(&r.Status,
			validation.When(r.Status != "",
				validation.In(StatusAvailable, StatusBorrowed, StatusReserved).Error("status must be AVAILABLE, BORROWED or RESERVED"),
			),
		),
	)
}

// BookResponse is the API representation of a Book.
type BookResponse struct {
	ID              int64     `json:"id"`
	Title           string    `json:"title"`
	Author          string    `json:"author"`
	ISBN            string    `json:"isbn"`
	PublicationYear int       `json:"publicationYear"`
	Status          Status    `json:"status"`
	CreatedAt       time.Time `json:"createdAt"`
}

func ToResponse(b Book) BookResponse {
	return BookResponse{
		ID:              b.ID,
		Title:           b.Title,
		Author:          b.Author,
		ISBN:            b.ISBN,
		PublicationYear: b.PublicationYear,
		Status:          b.Status,
		CreatedAt:       b.CreatedAt,
	}
}

func ToResponses(books []Book) []BookResponse {
	out := make([]BookResponse, len(books))
	for i, b := range books {
		out[i] = ToResponse(b)
	}
	return out
}

// ToRequest prefills the edit form from an existing book.
func (r BookResponse) ToRequest() BookRequest {
	return BookRequest{
		ID:              r.ID,
		Title:           r.Title,
		Author:          r.Author,
		ISBN:            r.ISBN,
		PublicationYear: r.PublicationYear,
		Status:          r.Status,
	}
}
