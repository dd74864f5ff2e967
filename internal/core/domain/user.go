package domain

// User is a credential record. Email uniquely identifies a user.
type User struct {
	ID             int64  `json:"id"`
	Email          string `json:"email"`
	HashedPassword string `json:"-"` // Never expose
}
