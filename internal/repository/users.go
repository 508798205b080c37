package repository

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/deppfellow/jobly/internal/errs"
	"github.com/deppfellow/jobly/internal/lib/password"
	"github.com/deppfellow/jobly/internal/model"
	"github.com/deppfellow/jobly/internal/sqlerr"
	"github.com/deppfellow/jobly/internal/validation"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
)

const userColumns = `username, first_name, last_name, email, is_admin`

// userDetailQuery selects users with their applied job ids. Users without
// applications get an empty array rather than NULL.
const userDetailQuery = `
	SELECT u.username, u.first_name, u.last_name, u.email, u.is_admin,
	       COALESCE(
	           array_agg(a.job_id ORDER BY a.job_id) FILTER (WHERE a.job_id IS NOT NULL),
	           '{}'
	       ) AS jobs
	FROM users AS u
	LEFT JOIN applications AS a ON a.username = u.username`

// UserRepository stores users and their job applications.
type UserRepository struct {
	db     DBTX
	hasher PasswordHasher
	log    *zerolog.Logger
}

// NewUserRepository returns a repository running on db. A nil log discards output.
func NewUserRepository(db DBTX, hasher PasswordHasher, log *zerolog.Logger) *UserRepository {
	if log == nil {
		nop := zerolog.Nop()
		log = &nop
	}

	return &UserRepository{
		db:     db,
		hasher: hasher,
		log:    log,
	}
}

func invalidCredentials() error {
	return errs.NewUnauthorizedError("Invalid username/password", true)
}

func userNotFound(username string) error {
	return errs.NewNotFoundError(fmt.Sprintf("No user: %s", username), true, nil)
}

func jobNotFound(jobID int) error {
	return errs.NewNotFoundError(fmt.Sprintf("No job: %d", jobID), true, nil)
}

// hashPassword hashes plain, reporting an over-long password as a 400 on
// the password field.
func (r *UserRepository) hashPassword(op, plain string) (string, error) {
	hashed, err := r.hasher.Hash(plain)
	if errors.Is(err, password.ErrTooLong) {
		return "", errs.NewBadRequestError("Password too long", true, nil, []errs.FieldError{{
			Field: "password",
			Error: fmt.Sprintf("must not exceed %d bytes", password.MaxLength),
		}})
	}
	if err != nil {
		return "", storageError(r.log, op, err)
	}
	return hashed, nil
}

// Authenticate returns the user when password matches the stored hash.
// An unknown username and a wrong password fail the same way.
func (r *UserRepository) Authenticate(ctx context.Context, username, plain string) (*model.User, error) {
	var (
		user   model.User
		hashed string
	)

	err := r.db.QueryRow(ctx, `
		SELECT username, password, first_name, last_name, email, is_admin
		FROM users
		WHERE username = $1`,
		username,
	).Scan(&user.Username, &hashed, &user.FirstName, &user.LastName, &user.Email, &user.IsAdmin)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, invalidCredentials()
	}
	if err != nil {
		return nil, storageError(r.log, "authenticate", err)
	}

	if err := r.hasher.Compare(hashed, plain); err != nil {
		if !errors.Is(err, password.ErrMismatch) {
			r.log.Warn().Err(err).Str("username", username).Msg("stored password hash is unusable")
		}
		return nil, invalidCredentials()
	}

	return &user, nil
}

// Register creates a user with a hashed password.
//
// A taken username is reported as a 400 before inserting; the primary key
// and the unique email index are still the final word when two
// registrations race.
func (r *UserRepository) Register(ctx context.Context, in model.RegisterUserInput) (*model.User, error) {
	if err := validation.Check(in); err != nil {
		return nil, err
	}

	hashed, err := r.hashPassword("register", in.Password)
	if err != nil {
		return nil, err
	}

	var user *model.User
	err = pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		var taken bool
		err := tx.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM users WHERE username = $1)`,
			in.Username,
		).Scan(&taken)
		if err != nil {
			return err
		}
		if taken {
			return errs.NewBadRequestError(fmt.Sprintf("Duplicate username: %s", in.Username), true, nil, nil)
		}

		rows, err := tx.Query(ctx, `
			INSERT INTO users (username, password, first_name, last_name, email, is_admin)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING `+userColumns,
			in.Username, hashed, in.FirstName, in.LastName, in.Email, in.IsAdmin,
		)
		if err != nil {
			return err
		}

		user, err = pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[model.User])
		return err
	})
	if err != nil {
		return nil, storageError(r.log, "register", err)
	}

	r.log.Info().Str("username", user.Username).Msg("user registered")
	return user, nil
}

// FindAll returns every user with their job ids, ordered by username.
func (r *UserRepository) FindAll(ctx context.Context) ([]model.UserDetail, error) {
	rows, err := r.db.Query(ctx, userDetailQuery+`
		GROUP BY u.username
		ORDER BY u.username`)
	if err != nil {
		return nil, storageError(r.log, "find_all", err)
	}

	users, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.UserDetail])
	if err != nil {
		return nil, storageError(r.log, "find_all", err)
	}

	return users, nil
}

// Get returns one user with their job ids.
func (r *UserRepository) Get(ctx context.Context, username string) (*model.UserDetail, error) {
	rows, err := r.db.Query(ctx, userDetailQuery+`
		WHERE u.username = $1
		GROUP BY u.username`,
		username,
	)
	if err != nil {
		return nil, storageError(r.log, "get", err)
	}

	user, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[model.UserDetail])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, userNotFound(username)
	}
	if err != nil {
		return nil, storageError(r.log, "get", err)
	}

	return user, nil
}

// Update changes only the fields present in in. A new password is hashed
// first. An empty update is a 400 and never reaches the database.
func (r *UserRepository) Update(ctx context.Context, username string, in model.UpdateUserInput) (*model.User, error) {
	if err := validation.Check(in); err != nil {
		return nil, err
	}

	if in.Password != nil {
		hashed, err := r.hashPassword("update", *in.Password)
		if err != nil {
			return nil, err
		}
		in.Password = &hashed
	}

	setClause, args, err := partialUpdate(userAssignments(in))
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		UPDATE users
		SET %s
		WHERE username = $%d
		RETURNING %s`,
		setClause, len(args)+1, userColumns,
	)

	rows, err := r.db.Query(ctx, query, append(args, username)...)
	if err != nil {
		return nil, storageError(r.log, "update", err)
	}

	user, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[model.User])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, userNotFound(username)
	}
	if err != nil {
		return nil, storageError(r.log, "update", err)
	}

	return user, nil
}

// Remove deletes a user. Their applications go with them.
func (r *UserRepository) Remove(ctx context.Context, username string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE username = $1`, username)
	if err != nil {
		return storageError(r.log, "remove", err)
	}
	if tag.RowsAffected() == 0 {
		return userNotFound(username)
	}

	r.log.Info().Str("username", username).Msg("user removed")
	return nil
}

// ApplyForJob records that username applied to jobID, with status "applied".
//
// The (username, job_id) primary key decides duplicates: the insert is a
// no-op on conflict, which is reported as a 400. The user and job rows stay
// key-share locked until commit, so neither can be deleted in between.
func (r *UserRepository) ApplyForJob(ctx context.Context, username string, jobID int) (*model.Application, error) {
	var app *model.Application

	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		if err := ensureJob(ctx, tx, jobID); err != nil {
			return err
		}
		if err := ensureUser(ctx, tx, username); err != nil {
			return err
		}

		rows, err := tx.Query(ctx, `
			INSERT INTO applications (username, job_id, status)
			VALUES ($1, $2, $3)
			ON CONFLICT (username, job_id) DO NOTHING
			RETURNING username, job_id, status`,
			username, jobID, string(model.StatusApplied),
		)
		if err != nil {
			return missingReference(err, username, jobID)
		}

		app, err = pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[model.Application])
		if errors.Is(err, pgx.ErrNoRows) {
			return errs.NewBadRequestError(
				fmt.Sprintf("Already applied: %s to job %d", username, jobID), true, nil, nil)
		}
		return missingReference(err, username, jobID)
	})
	if err != nil {
		return nil, storageError(r.log, "apply_for_job", err)
	}

	r.log.Info().Str("username", username).Int("job_id", jobID).Msg("job application created")
	return app, nil
}

// UpdateAppStatus sets the status of an existing application.
func (r *UserRepository) UpdateAppStatus(ctx context.Context, username string, jobID int, status model.ApplicationStatus) (*model.Application, error) {
	if err := validation.Check(model.StatusUpdate{Status: status}); err != nil {
		return nil, err
	}

	var app *model.Application

	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		if err := ensureUser(ctx, tx, username); err != nil {
			return err
		}
		if err := ensureJob(ctx, tx, jobID); err != nil {
			return err
		}

		rows, err := tx.Query(ctx, `
			UPDATE applications
			SET status = $1
			WHERE username = $2 AND job_id = $3
			RETURNING username, job_id, status`,
			string(status), username, jobID,
		)
		if err != nil {
			return err
		}

		app, err = pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[model.Application])
		if errors.Is(err, pgx.ErrNoRows) {
			return errs.NewNotFoundError(
				fmt.Sprintf("No application: %s for job %d", username, jobID), true, nil)
		}
		return err
	})
	if err != nil {
		return nil, storageError(r.log, "update_app_status", err)
	}

	r.log.Info().
		Str("username", username).
		Int("job_id", jobID).
		Str("status", string(status)).
		Msg("job application status updated")
	return app, nil
}

// ensureUser fails with a 404 unless username exists. The row is locked
// FOR KEY SHARE for the rest of the transaction.
func ensureUser(ctx context.Context, q DBTX, username string) error {
	var one int
	err := q.QueryRow(ctx,
		`SELECT 1 FROM users WHERE username = $1 FOR KEY SHARE`,
		username,
	).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return userNotFound(username)
	}
	return err
}

// ensureJob is ensureUser for jobs. Ids outside the INTEGER range of
// jobs.id cannot exist and are rejected without a query.
func ensureJob(ctx context.Context, q DBTX, jobID int) error {
	if jobID < 1 || jobID > math.MaxInt32 {
		return jobNotFound(jobID)
	}

	var one int
	err := q.QueryRow(ctx,
		`SELECT 1 FROM jobs WHERE id = $1 FOR KEY SHARE`,
		jobID,
	).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return jobNotFound(jobID)
	}
	return err
}

// missingReference turns a foreign key violation on applications into the
// 404 for whichever row vanished. Other errors pass through.
func missingReference(err error, username string, jobID int) error {
	if sqlerr.ErrCode(err) != sqlerr.ForeignKeyViolation {
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && strings.Contains(pgErr.ConstraintName, "job_id") {
		return jobNotFound(jobID)
	}
	return userNotFound(username)
}
