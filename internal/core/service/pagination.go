package service

const (
	defaultPageSize = 50
	maxPageSize     = 100
)

// clampPage normalizes caller-supplied pagination.
func clampPage(limit, offset, def int) (int, int) {
	if limit <= 0 {
		limit = def
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
