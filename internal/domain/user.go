package domain

type User struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Phone  string `json:"phone,omitempty"`
	Avatar string `json:"avatar,omitempty"`
	Role   string `json:"role,omitempty"`
}

// AuthData is the payload returned by login, signup and profile calls.
type AuthData struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

type SignupRequest struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	PhoneNumber int64  `json:"phoneNumber"`
	Gender      int    `json:"gender"`
}
