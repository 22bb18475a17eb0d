package entity

// User is keyed by Username, which never changes after signup.
type User struct {
	ID           string
	Username     string
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
}
