package dto

// PageRequest pagination for listings.
type PageRequest struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

// DefaultPage applies defaults when Limit/Offset are zero.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// ErrorResponse HTTP error body. Current/Allowed are populated for illegal
// transition errors so a caller can self-correct without guessing.
type ErrorResponse struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Current string   `json:"current,omitempty"`
	Allowed []string `json:"allowed,omitempty"`
}
