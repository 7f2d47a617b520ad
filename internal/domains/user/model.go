package user

import "time"

// User là credential record; Password là secret đã lưu (plaintext hoặc bcrypt hash
// tuỳ PASSWORD_SCHEME)
type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Password  string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// Session là kết quả login thành công
type Session struct {
	Token     string
	UserID    int64
	Username  string
	ExpiresAt time.Time
}
