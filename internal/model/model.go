// Package model holds the domain types shared by the repository layer and
// its callers.
package model

// User is the public profile of a user. It never carries the password hash.
type User struct {
	Username  string `json:"username" db:"username"`
	FirstName string `json:"firstName" db:"first_name"`
	LastName  string `json:"lastName" db:"last_name"`
	Email     string `json:"email" db:"email"`
	IsAdmin   bool   `json:"isAdmin" db:"is_admin"`
}

// UserDetail is a User with the ids of the jobs they applied to, ascending.
type UserDetail struct {
	User
	Jobs []int `json:"jobs" db:"jobs"`
}

// Job is a job posting owned by a company.
type Job struct {
	ID            int      `json:"id" db:"id"`
	Title         string   `json:"title" db:"title"`
	Salary        *int     `json:"salary" db:"salary"`
	Equity        *float64 `json:"equity" db:"equity"`
	CompanyHandle string   `json:"companyHandle" db:"company_handle"`
}
