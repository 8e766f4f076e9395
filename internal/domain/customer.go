package domain

// Customer ranks, highest-value customers first. New customers default to RankNew.
const (
	RankTop      = "A"
	RankRegular  = "B"
	RankOccasion = "C"
	RankNew      = "D"
)

// RankUnknown is reported in summaries when an order references a
// customer that no longer resolves (deleted, or never existed).
const RankUnknown = "?"

// ValidRank reports whether r is one of the four business ranks.
func ValidRank(r string) bool {
	switch r {
	case RankTop, RankRegular, RankOccasion, RankNew:
		return true
	}
	return false
}

// Customer represents a customer record as stored in the customers collection.
type Customer struct {
	ID        string `json:"id,omitempty"`
	Name      string `json:"name"`
	Rank      string `json:"rank"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Address   string `json:"address"`
	Notes     string `json:"notes"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}
