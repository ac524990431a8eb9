package pagination

// Default and ceiling values for page sizes.
const (
	DefaultPerPage = 20
	MaxPerPage     = 100
)

// Params holds normalized pagination parameters.
type Params struct {
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
	Offset  int `json:"-"`
}

// New normalizes raw page/perPage values: non-positive pages become 1,
// non-positive or oversized page sizes fall back to the default.
func New(page, perPage int) Params {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > MaxPerPage {
		perPage = DefaultPerPage
	}
	return Params{
		Page:    page,
		PerPage: perPage,
		Offset:  (page - 1) * perPage,
	}
}

// Result is a paginated list envelope.
type Result[T any] struct {
	Data       []T  `json:"data"`
	TotalCount int  `json:"total_count"`
	Page       int  `json:"page"`
	PerPage    int  `json:"per_page"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

// NewResult wraps a page of data with derived paging metadata.
func NewResult[T any](data []T, totalCount int, params Params) Result[T] {
	if data == nil {
		data = []T{}
	}

	totalPages := totalCount / params.PerPage
	if totalCount%params.PerPage > 0 {
		totalPages++
	}

	return Result[T]{
		Data:       data,
		TotalCount: totalCount,
		Page:       params.Page,
		PerPage:    params.PerPage,
		TotalPages: totalPages,
		HasNext:    params.Page < totalPages,
		HasPrev:    params.Page > 1,
	}
}
