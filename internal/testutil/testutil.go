// Package testutil provides PostgreSQL fixtures for integration tests.
//
// Tests run against the database named by JOBLY_TEST_DATABASE_URL and are
// skipped when it is unset. Each test works inside its own transaction,
// rolled back on cleanup, so the database is left as it was found.
package testutil

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/deppfellow/jobly/internal/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// DatabaseURLEnv names the variable holding the test database DSN.
const DatabaseURLEnv = "JOBLY_TEST_DATABASE_URL"

var migrateOnce struct {
	sync.Once
	err error
}

// NewDB connects to the test database, applying migrations once per test
// binary. The pool is closed on cleanup.
func NewDB(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv(DatabaseURLEnv)
	if dsn == "" {
		t.Skipf("%s not set, skipping database test", DatabaseURLEnv)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	migrateOnce.Do(func() {
		log := zerolog.Nop()
		migrateOnce.err = database.Migrate(ctx, &log, dsn)
	})
	require.NoError(t, migrateOnce.err, "migrating test database")

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, pool.Ping(ctx))
	return pool
}

// Begin opens a transaction that is rolled back when the test ends.
func Begin(t *testing.T, pool *pgxpool.Pool) pgx.Tx {
	t.Helper()

	tx, err := pool.Begin(context.Background())
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = tx.Rollback(context.Background())
	})
	return tx
}

// Fixtures holds the generated ids of the seeded rows.
type Fixtures struct {
	J1, J2, J3 int
}

// Seed user credentials. Passwords are hashed at bcrypt.MinCost.
const (
	U1Password = "password1"
	U2Password = "password2"
)

// Seed inserts companies c1..c3, jobs j1..j3 (one per company), users u1
// and u2, and u1's applications to j1 and j2.
func Seed(t *testing.T, ctx context.Context, tx pgx.Tx) Fixtures {
	t.Helper()

	_, err := tx.Exec(ctx, `
		INSERT INTO companies (handle, name, num_employees, description, logo_url)
		VALUES ('c1', 'C1', 1, 'Desc1', 'http://c1.img'),
		       ('c2', 'C2', 2, 'Desc2', 'http://c2.img'),
		       ('c3', 'C3', 3, 'Desc3', 'http://c3.img')`)
	require.NoError(t, err)

	var f Fixtures
	err = tx.QueryRow(ctx, `
		WITH inserted AS (
			INSERT INTO jobs (title, salary, equity, company_handle)
			VALUES ('j1', 100, 0.1, 'c1'),
			       ('j2', 200, 0.2, 'c2'),
			       ('j3', 300, 0, 'c3')
			RETURNING id, title
		)
		SELECT
			(SELECT id FROM inserted WHERE title = 'j1'),
			(SELECT id FROM inserted WHERE title = 'j2'),
			(SELECT id FROM inserted WHERE title = 'j3')`,
	).Scan(&f.J1, &f.J2, &f.J3)
	require.NoError(t, err)

	_, err = tx.Exec(ctx, `
		INSERT INTO users (username, password, first_name, last_name, email)
		VALUES ('u1', $1, 'U1F', 'U1L', 'u1@email.com'),
		       ('u2', $2, 'U2F', 'U2L', 'u2@email.com')`,
		hash(t, U1Password), hash(t, U2Password),
	)
	require.NoError(t, err)

	_, err = tx.Exec(ctx, `
		INSERT INTO applications (username, job_id)
		VALUES ('u1', $1), ('u1', $2)`,
		f.J1, f.J2,
	)
	require.NoError(t, err)

	return f
}

func hash(t *testing.T, plain string) string {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hashed)
}
