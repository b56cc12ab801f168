package util

const (
	DefaultPageSize = 20
	MaxPageSize     = 50
)

// Calculate turns a 1-based page and a page size into an offset and limit.
// Out-of-range values fall back to page 1 and DefaultPageSize.
func Calculate(page, size int) (offset, limit int) {
	if page < 1 {
		page = 1
	}
	if size <= 0 || size > MaxPageSize {
		size = DefaultPageSize
	}
	return (page - 1) * size, size
}
