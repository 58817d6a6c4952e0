// Package page holds the paginated search response value.
package page

import (
	"fmt"

	"github.com/kailas-cloud/shopdex/internal/domain"
)

// Page is one page of search results (immutable value object).
//
// TotalElements is the count reported by the search backend. For very large
// result sets the backend may report an approximation; TotalPages inherits it.
type Page[T any] struct {
	content       []T
	totalElements int64
	currentPage   int
	size          int
	totalPages    int
	searchTimeMs  int64
}

// ValidateSize is the precondition callers check before New.
func ValidateSize(size int) error {
	if size < 1 {
		return fmt.Errorf("size must be at least 1, got %d: %w", size, domain.ErrInvalidPageSize)
	}
	return nil
}

// MaxWindow is the deepest result position a search may reach (RediSearch
// MAXSEARCHRESULTS default).
const MaxWindow = 1_000_000

// ValidateWindow checks that page n of the given size ends within MaxWindow.
// It never multiplies, so huge page numbers cannot overflow.
func ValidateWindow(n, size int) error {
	if err := ValidateSize(size); err != nil {
		return err
	}
	if n < 0 {
		n = 0
	}
	if n > MaxWindow/size-1 {
		return fmt.Errorf("page %d of size %d exceeds the %d result window: %w",
			n, size, MaxWindow, domain.ErrPageOutOfRange)
	}
	return nil
}

// New builds a page. currentPage is 0-based; size must be >= 1 and content
// must not exceed it.
func New[T any](content []T, totalElements int64, currentPage, size int, searchTimeMs int64) (Page[T], error) {
	if err := ValidateSize(size); err != nil {
		return Page[T]{}, err
	}
	if len(content) > size {
		return Page[T]{}, fmt.Errorf("content has %d items, page size is %d: %w",
			len(content), size, domain.ErrInvalidPageSize)
	}
	if totalElements < 0 {
		totalElements = 0
	}
	if currentPage < 0 {
		currentPage = 0
	}

	c := make([]T, len(content))
	copy(c, content)

	return Page[T]{
		content:       c,
		totalElements: totalElements,
		currentPage:   currentPage,
		size:          size,
		totalPages:    totalPages(totalElements, size),
		searchTimeMs:  searchTimeMs,
	}, nil
}

// Content returns a copy of the page items.
func (p Page[T]) Content() []T {
	c := make([]T, len(p.content))
	copy(c, p.content)
	return c
}

// Len returns the number of items on this page.
func (p Page[T]) Len() int { return len(p.content) }

// TotalElements returns the match count across all pages.
func (p Page[T]) TotalElements() int64 { return p.totalElements }

// CurrentPage returns the 0-based page index.
func (p Page[T]) CurrentPage() int { return p.currentPage }

// Size returns the requested page length.
func (p Page[T]) Size() int { return p.size }

// TotalPages returns ceil(TotalElements / Size).
func (p Page[T]) TotalPages() int { return p.totalPages }

// SearchTimeMs returns the backend round-trip time in milliseconds.
func (p Page[T]) SearchTimeMs() int64 { return p.searchTimeMs }

// HasNext reports whether a later page exists.
func (p Page[T]) HasNext() bool { return p.currentPage+1 < p.totalPages }

// Offset returns the index of the first item of page n for the given size.
func Offset(n, size int) int {
	if n < 0 {
		n = 0
	}
	return n * size
}

func totalPages(total int64, size int) int {
	s := int64(size)
	return int((total + s - 1) / s)
}
