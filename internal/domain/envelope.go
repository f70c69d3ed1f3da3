package domain

import "encoding/json"

// Envelope is the wrapper every backend response arrives in.
type Envelope struct {
	IsSuccess  bool            `json:"isSuccess"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
	Pagination *Pagination     `json:"pagination,omitempty"`
}

// Pagination is attached to paginated offer listings. Its absence on a
// listing response means the full result set fit in a single page.
type Pagination struct {
	Page       int `json:"page"`
	TotalPages int `json:"totalPages"`
	TotalItems int `json:"totalItems"`
}

// Decode unmarshals the envelope payload into v. A missing or null payload
// leaves v untouched.
func (e *Envelope) Decode(v any) error {
	if len(e.Data) == 0 || string(e.Data) == "null" {
		return nil
	}
	return json.Unmarshal(e.Data, v)
}
