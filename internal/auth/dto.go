package auth

import "strings"

// RegisterDTO is the JSON body of POST /auth/register.
type RegisterDTO struct {
	Email    string  `json:"email" validate:"required,email,max=255"`
	Password string  `json:"password" validate:"required,min=6,max=72"`
	FullName *string `json:"full_name" validate:"omitnil,max=255"`
}

// LoginDTO is the form body of POST /auth/login. The username field
// carries the email.
type LoginDTO struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}

func (d *RegisterDTO) Normalize() {
	d.Email = strings.TrimSpace(d.Email)
	if d.FullName != nil {
		name := strings.TrimSpace(*d.FullName)
		if name == "" {
			d.FullName = nil
		} else {
			d.FullName = &name
		}
	}
}
