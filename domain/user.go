package domain

// Session is the logged-in user persisted with the State.
type Session struct {
	Username   string `json:"username"`
	IsLoggedIn bool   `json:"isLoggedIn"`
}
