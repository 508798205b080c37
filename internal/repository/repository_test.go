package repository

import (
	"bytes"
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/deppfellow/jobly/internal/errs"
	"github.com/deppfellow/jobly/internal/lib/password"
	"github.com/deppfellow/jobly/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorageError(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)

	t.Run("application errors pass through", func(t *testing.T) {
		in := errs.NewNotFoundError("No user: x", true, nil)
		assert.Same(t, in, storageError(&log, "get", in))
	})

	t.Run("no rows is not found", func(t *testing.T) {
		assert.True(t, errs.IsNotFound(storageError(&log, "get", pgx.ErrNoRows)))
	})

	t.Run("unique violation is bad request", func(t *testing.T) {
		err := storageError(&log, "register", &pgconn.PgError{
			Code:           "23505",
			TableName:      "users",
			ConstraintName: "users_email_key",
		})

		var httpErr *errs.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, 400, httpErr.Status)
		assert.Equal(t, "USER_ALREADY_EXISTS", httpErr.Code)
	})

	t.Run("unknown errors are logged", func(t *testing.T) {
		buf.Reset()

		err := storageError(&log, "remove", errors.New("connection reset"))
		assert.Equal(t, 500, errs.StatusCode(err))
		assert.Contains(t, buf.String(), "connection reset")
		assert.Contains(t, buf.String(), `"operation":"remove"`)
	})
}

func TestUserRepository_PasswordTooLong(t *testing.T) {
	// Hashing fails before any query, so no database is needed.
	users := NewUserRepository(nil, password.NewBcrypt(4), nil)
	long := strings.Repeat("a", password.MaxLength+1)
	ctx := context.Background()

	t.Run("register", func(t *testing.T) {
		in := newUserInput()
		in.Password = long

		_, err := users.Register(ctx, in)
		assert.True(t, errs.IsBadRequest(err))

		var httpErr *errs.HTTPError
		require.ErrorAs(t, err, &httpErr)
		require.Len(t, httpErr.Errors, 1)
		assert.Equal(t, "password", httpErr.Errors[0].Field)
	})

	t.Run("update", func(t *testing.T) {
		_, err := users.Update(ctx, "u1", model.UpdateUserInput{Password: &long})
		assert.True(t, errs.IsBadRequest(err))
		assert.EqualError(t, err, "Password too long")
	})
}

func TestEnsureJob_OutOfRange(t *testing.T) {
	ctx := context.Background()

	for _, id := range []int{0, -1, math.MaxInt32 + 1} {
		err := ensureJob(ctx, nil, id)
		assert.True(t, errs.IsNotFound(err), id)
	}
}

func TestMissingReference(t *testing.T) {
	t.Run("job deleted", func(t *testing.T) {
		err := missingReference(&pgconn.PgError{
			Code:           "23503",
			TableName:      "applications",
			ConstraintName: "applications_job_id_fkey",
		}, "u1", 7)
		assert.True(t, errs.IsNotFound(err))
		assert.EqualError(t, err, "No job: 7")
	})

	t.Run("user deleted", func(t *testing.T) {
		err := missingReference(&pgconn.PgError{
			Code:           "23503",
			TableName:      "applications",
			ConstraintName: "applications_username_fkey",
		}, "u1", 7)
		assert.True(t, errs.IsNotFound(err))
		assert.EqualError(t, err, "No user: u1")
	})

	t.Run("other errors pass through", func(t *testing.T) {
		in := errors.New("connection reset")
		assert.Same(t, in, missingReference(in, "u1", 7))
		assert.NoError(t, missingReference(nil, "u1", 7))
	})
}
