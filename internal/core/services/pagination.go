package services

// Pagination bounds the listing window. Requested limits are clamped into
// [1, MaxLimit] rather than rejected; a missing limit falls back to
// DefaultLimit and a negative offset to 0.
type Pagination struct {
	DefaultLimit int
	MaxLimit     int
}

// DefaultPagination mirrors the upstream listing bounds
func DefaultPagination() Pagination {
	return Pagination{DefaultLimit: 50, MaxLimit: 200}
}

func (p Pagination) window(limit, offset *int, total int) (int, int) {
	l := p.DefaultLimit
	if limit != nil {
		l = *limit
	}
	if l < 1 {
		l = 1
	}
	if l > p.MaxLimit {
		l = p.MaxLimit
	}

	o := 0
	if offset != nil && *offset > 0 {
		o = *offset
	}

	// Out-of-range offsets yield an empty slice, not an error
	if o > total {
		o = total
	}
	end := o + l
	if end > total {
		end = total
	}
	return o, end
}
