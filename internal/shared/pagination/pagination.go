package pagination

import (
	"math"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	DefaultPage   = 0
	DefaultSize   = 10
	MaxSize       = 100
	MaxPage       = math.MaxInt32
	DefaultSortBy = "id"
)

type Direction string

const (
	Asc  Direction = "ASC"
	Desc Direction = "DESC"
)

// ParseDirection is descending only for a case-insensitive "DESC"; anything else sorts ascending.
func ParseDirection(s string) Direction {
	if strings.EqualFold(strings.TrimSpace(s), string(Desc)) {
		return Desc
	}
	return Asc
}

// PageRequest describes one page of a sorted listing. Page is 0-based.
type PageRequest struct {
	Page      int
	Size      int
	SortBy    string
	Direction Direction
}

// NewPageRequest applies defaults and caps Size at MaxSize.
func NewPageRequest(page, size int, sortBy, direction string) PageRequest {
	if size > MaxSize {
		size = MaxSize
	}
	sortBy = strings.TrimSpace(sortBy)
	if sortBy == "" {
		sortBy = DefaultSortBy
	}
	return PageRequest{
		Page:      page,
		Size:      size,
		SortBy:    sortBy,
		Direction: ParseDirection(direction),
	}
}

// Query is the source of raw listing parameters (gin.Context satisfies it).
type Query interface {
	DefaultQuery(key, defaultValue string) string
}

// FromQuery reads page, size, sortBy and direction query parameters.
func FromQuery(q Query) (PageRequest, error) {
	page, err := strconv.Atoi(q.DefaultQuery("page", strconv.Itoa(DefaultPage)))
	if err != nil {
		return PageRequest{}, validation.Errors{"page": validation.NewError("validation_is_int", "must be an integer")}
	}
	size, err := strconv.Atoi(q.DefaultQuery("size", strconv.Itoa(DefaultSize)))
	if err != nil {
		return PageRequest{}, validation.Errors{"size": validation.NewError("validation_is_int", "must be an integer")}
	}

	req := NewPageRequest(page, size, q.DefaultQuery("sortBy", DefaultSortBy), q.DefaultQuery("direction", string(Asc)))
	if err := req.Validate(); err != nil {
		return PageRequest{}, err
	}
	return req, nil
}

func (p PageRequest) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Page, validation.Min(0), validation.Max(MaxPage)),
		validation.Field(&p.Size, validation.Required, validation.Min(1), validation.Max(MaxSize)),
		validation.Field(&p.SortBy, validation.Required),
	)
}

func (p PageRequest) Offset() uint {
	return uint(p.Page) * uint(p.Size)
}

func (p PageRequest) Descending() bool {
	return p.Direction == Desc
}

// Page is one slice of a sorted listing plus the totals needed to navigate it.
type Page[T any] struct {
	Content       []T   `json:"content"`
	PageNumber    int   `json:"pageNumber"`
	PageSize      int   `json:"pageSize"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
}

func NewPage[T any](content []T, req PageRequest, total int64) Page[T] {
	if content == nil {
		content = []T{}
	}
	totalPages := 0
	if req.Size > 0 {
		totalPages = int((total + int64(req.Size) - 1) / int64(req.Size))
	}
	return Page[T]{
		Content:       content,
		PageNumber:    req.Page,
		PageSize:      req.Size,
		TotalElements: total,
		TotalPages:    totalPages,
	}
}

func (p Page[T]) HasPrevious() bool { return p.PageNumber > 0 }
func (p Page[T]) HasNext() bool     { return p.PageNumber+1 < p.TotalPages }
func (p Page[T]) PreviousPage() int { return p.PageNumber - 1 }
func (p Page[T]) NextPage() int     { return p.PageNumber + 1 }
