package user

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// LoginRequest bind được từ JSON body hoặc form
type LoginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

func (r *LoginRequest) Normalize() {
	r.Username = strings.TrimSpace(r.Username)
}

// Validate trả về validation.Errors keyed theo json tag ("username", "password")
func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required.Error(MsgUsernameRequired)),
		validation.Field(&r.Password, validation.Required.Error(MsgPasswordRequired)),
	)
}
