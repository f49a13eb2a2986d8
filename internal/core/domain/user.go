package domain

// User is one registered account. Records are created at registration and
// never mutated afterwards; the username is the lookup key and is
// case-sensitive.
type User struct {
	Username     string `json:"username"`
	UserID       string `json:"userId"`
	PasswordHash string `json:"-"`
	// CreatedAt is unix milliseconds.
	CreatedAt int64 `json:"createdAt"`
}
