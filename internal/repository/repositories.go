package repository

import (
	"github.com/deppfellow/jobly/internal/lib/password"
	"github.com/deppfellow/jobly/internal/server"
)

// Repositories is the container for all repository instances.
type Repositories struct {
	Users *UserRepository
}

// NewRepositories builds every repository on the server's pool, hashing
// passwords with the configured bcrypt work factor.
func NewRepositories(s *server.Server) *Repositories {
	hasher := password.NewBcrypt(s.Config.Auth.WorkFactor())

	return &Repositories{
		Users: NewUserRepository(s.DB.Pool, hasher, s.Logger),
	}
}
