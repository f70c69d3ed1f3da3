package domain

import "encoding/json"

// Reference is a backend cross-reference field that arrives either as a
// bare string or as a populated object with denormalized display fields.
// It is resolved once by the transform package and never used downstream.
type Reference struct {
	Raw    string
	Object *ReferenceObject
}

type ReferenceObject struct {
	ID           string `json:"id"`
	AltID        string `json:"_id"`
	Name         string `json:"name"`
	CategoryName string `json:"categoryName"`
	Logo         string `json:"logo"`
}

// RefID returns the identifier, preferring "id" over "_id".
func (o *ReferenceObject) RefID() string {
	if o.ID != "" {
		return o.ID
	}
	return o.AltID
}

func (r *Reference) UnmarshalJSON(data []byte) error {
	*r = Reference{}
	if len(data) == 0 || string(data) == "null" {
		return nil
	}
	if data[0] == '"' {
		return json.Unmarshal(data, &r.Raw)
	}
	obj := &ReferenceObject{}
	if err := json.Unmarshal(data, obj); err != nil {
		return err
	}
	r.Object = obj
	return nil
}

func (r Reference) MarshalJSON() ([]byte, error) {
	if r.Object != nil {
		return json.Marshal(r.Object)
	}
	if r.Raw == "" {
		return []byte("null"), nil
	}
	return json.Marshal(r.Raw)
}

// IsZero reports whether the backend omitted the field entirely.
func (r Reference) IsZero() bool {
	return r.Raw == "" && r.Object == nil
}

// ImageList is a backend image field that arrives either as a single URL
// string or as an array of URLs.
type ImageList []string

func (l *ImageList) UnmarshalJSON(data []byte) error {
	*l = nil
	if len(data) == 0 || string(data) == "null" {
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*l = ImageList{s}
		return nil
	}
	var urls []string
	if err := json.Unmarshal(data, &urls); err != nil {
		return err
	}
	*l = urls
	return nil
}

// Primary returns the first image URL, or "" when there is none.
func (l ImageList) Primary() string {
	if len(l) > 0 {
		return l[0]
	}
	return ""
}
