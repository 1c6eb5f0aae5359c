package domain

const (
	DefaultOffset = 0
	DefaultLimit  = 100
)

// ClampPage replaces negative offset and limit values with zero.
func ClampPage(offset, limit int) (int, int) {
	if offset < 0 {
		offset = 0
	}
	if limit < 0 {
		limit = 0
	}
	return offset, limit
}

// PageBounds returns the half-open slice window [start, end) of a page over a
// collection of total items. The window is empty when offset is past the end.
func PageBounds(total, offset, limit int) (int, int) {
	offset, limit = ClampPage(offset, limit)
	if offset >= total {
		return total, total
	}
	end := total
	if limit < total-offset {
		end = offset + limit
	}
	return offset, end
}
