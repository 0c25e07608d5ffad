package queries

const (
	DefaultPerPage = 20
	MaxPerPage     = 100
)

// Page is classic page/per_page pagination for the admin listing.
// Out-of-range values are clamped rather than rejected.
type Page struct {
	Number  int
	PerPage int
}

func NewPage(number, perPage int) Page {
	if number < 1 {
		number = 1
	}
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}
	return Page{Number: number, PerPage: perPage}
}

func (p Page) Offset() int {
	return (p.Number - 1) * p.PerPage
}

func (p Page) Limit() int {
	return p.PerPage
}

type PagedReservations struct {
	Items   []*ReservationView `json:"items"`
	Total   int64              `json:"total"`
	Page    int                `json:"page"`
	PerPage int                `json:"per_page"`
}
