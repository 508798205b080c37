package model

import "github.com/deppfellow/jobly/internal/validation"

// RegisterUserInput is everything needed to create a user.
type RegisterUserInput struct {
	Username  string `json:"username" validate:"required,max=25"`
	Password  string `json:"password" validate:"required"`
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	IsAdmin   bool   `json:"isAdmin"`
}

func (r RegisterUserInput) Validate() error {
	return validation.Struct(r)
}

// UpdateUserInput is a partial update: nil fields are left untouched.
type UpdateUserInput struct {
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
	Password  *string `json:"password,omitempty"`
	Email     *string `json:"email,omitempty" validate:"omitempty,email"`
	IsAdmin   *bool   `json:"isAdmin,omitempty"`
}

func (u UpdateUserInput) Validate() error {
	return validation.Struct(u)
}
