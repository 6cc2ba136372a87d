package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"pdfvault/internal/model"
	"pdfvault/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func userRows(users ...*model.User) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "full_name", "email", "password_hash", "created_at"})
	for _, u := range users {
		rows.AddRow(u.ID, u.FullName, u.Email, u.PasswordHash, u.CreatedAt)
	}
	return rows
}

func sampleUser() *model.User {
	return &model.User{
		ID:           "user-uuid",
		FullName:     "Ada Lovelace",
		Email:        "ada@example.com",
		PasswordHash: "$argon2id$...",
		CreatedAt:    time.Now().UTC(),
	}
}

func TestUserPostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewUserPostgres(db)
	ctx := context.Background()

	t.Run("created", func(t *testing.T) {
		u := sampleUser()

		mock.ExpectQuery("INSERT INTO users").
			WithArgs(u.ID, u.FullName, u.Email, u.PasswordHash, u.CreatedAt).
			WillReturnRows(userRows(u))

		result, err := repo.Create(ctx, u)

		assert.NoError(t, err)
		require.NotNil(t, result)
		assert.Equal(t, u.Email, result.Email)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unique violation maps to ErrDuplicateEmail", func(t *testing.T) {
		u := sampleUser()

		mock.ExpectQuery("INSERT INTO users").
			WithArgs(u.ID, u.FullName, u.Email, u.PasswordHash, u.CreatedAt).
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "uq_users_email_lower"})

		result, err := repo.Create(ctx, u)

		assert.ErrorIs(t, err, repository.ErrDuplicateEmail)
		assert.Nil(t, result)
	})

	t.Run("other errors pass through", func(t *testing.T) {
		u := sampleUser()

		mock.ExpectQuery("INSERT INTO users").
			WithArgs(u.ID, u.FullName, u.Email, u.PasswordHash, u.CreatedAt).
			WillReturnError(&pgconn.PgError{Code: "23503"})

		_, err := repo.Create(ctx, u)

		assert.Error(t, err)
		assert.NotErrorIs(t, err, repository.ErrDuplicateEmail)
	})
}

func TestUserPostgres_FindByEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewUserPostgres(db)
	ctx := context.Background()

	t.Run("found regardless of case", func(t *testing.T) {
		u := sampleUser()

		mock.ExpectQuery("SELECT (.+) FROM users WHERE LOWER\\(email\\) = LOWER\\(\\$1\\)").
			WithArgs("Ada@Example.com").
			WillReturnRows(userRows(u))

		result, err := repo.FindByEmail(ctx, "Ada@Example.com")

		assert.NoError(t, err)
		require.NotNil(t, result)
		assert.Equal(t, "ada@example.com", result.Email)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM users WHERE LOWER\\(email\\) = LOWER\\(\\$1\\)").
			WithArgs("ghost@example.com").
			WillReturnError(sql.ErrNoRows)

		result, err := repo.FindByEmail(ctx, "ghost@example.com")

		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, result)
	})
}

func TestUserPostgres_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewUserPostgres(db)
	u := sampleUser()

	mock.ExpectQuery("SELECT (.+) FROM users WHERE id = \\$1").
		WithArgs(u.ID).
		WillReturnRows(userRows(u))

	result, err := repo.FindByID(context.Background(), u.ID)

	assert.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, u.ID, result.ID)
}

func TestUserPostgres_FindByIDs(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewUserPostgres(db)
	ctx := context.Background()

	t.Run("empty id set skips the query", func(t *testing.T) {
		users, err := repo.FindByIDs(ctx, nil)

		assert.NoError(t, err)
		assert.Empty(t, users)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns matching users", func(t *testing.T) {
		a := sampleUser()
		b := &model.User{ID: "user-2", FullName: "Bob", Email: "bob@example.com", CreatedAt: time.Now().UTC()}

		mock.ExpectQuery("SELECT (.+) FROM users WHERE id = ANY\\(\\$1\\)").
			WillReturnRows(userRows(a, b))

		users, err := repo.FindByIDs(ctx, []string{a.ID, b.ID})

		assert.NoError(t, err)
		require.Len(t, users, 2)
		assert.Equal(t, "bob@example.com", users[1].Email)
	})
}
