package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kashih222/Ecomerce-Web-Task-3-at-Ekel-AI/internal/domain"
	apperrors "github.com/kashih222/Ecomerce-Web-Task-3-at-Ekel-AI/pkg/errors"
)

func newContactTestFixture(t *testing.T) (*ContactMessageRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	repo := NewContactMessageRepository(mock)
	return repo, mock
}

func sampleContactMessage() *domain.ContactMessage {
	return &domain.ContactMessage{
		ID:        "m-1234",
		FullName:  "Alice Smith",
		Email:     "alice@example.com",
		Subject:   "Order question",
		Message:   "Where is my package?",
		CreatedBy: "u-1234",
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}
}

func contactColumns() []string {
	return []string{"id", "full_name", "email", "subject", "message", "created_by", "created_at"}
}

func contactRow(m *domain.ContactMessage) *pgxmock.Rows {
	return pgxmock.NewRows(contactColumns()).AddRow(
		m.ID, m.FullName, m.Email, m.Subject, m.Message, m.CreatedBy, m.CreatedAt,
	)
}

func TestContactMessageRepository_Create_Success(t *testing.T) {
	repo, mock := newContactTestFixture(t)
	defer mock.Close()

	m := sampleContactMessage()

	mock.ExpectExec("INSERT INTO contact_messages").
		WithArgs(m.ID, m.FullName, m.Email, m.Subject, m.Message, m.CreatedBy, m.CreatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := repo.Create(context.Background(), m)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContactMessageRepository_GetByID_Success(t *testing.T) {
	repo, mock := newContactTestFixture(t)
	defer mock.Close()

	m := sampleContactMessage()

	mock.ExpectQuery("SELECT .+ FROM contact_messages WHERE id =").
		WithArgs(m.ID).
		WillReturnRows(contactRow(m))

	got, err := repo.GetByID(context.Background(), m.ID)
	require.NoError(t, err)
	assert.Equal(t, m.ID, got.ID)
	assert.Equal(t, m.Subject, got.Subject)
	assert.Equal(t, m.CreatedBy, got.CreatedBy)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContactMessageRepository_GetByID_NotFound(t *testing.T) {
	repo, mock := newContactTestFixture(t)
	defer mock.Close()

	mock.ExpectQuery("SELECT .+ FROM contact_messages WHERE id =").
		WithArgs("missing-id").
		WillReturnError(pgx.ErrNoRows)

	got, err := repo.GetByID(context.Background(), "missing-id")
	assert.Nil(t, got)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound), "expected ErrNotFound, got: %v", err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContactMessageRepository_List_Success(t *testing.T) {
	repo, mock := newContactTestFixture(t)
	defer mock.Close()

	m := sampleContactMessage()

	mock.ExpectQuery("SELECT .+ FROM contact_messages ORDER BY created_at DESC").
		WillReturnRows(contactRow(m))

	got, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, m.ID, got[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContactMessageRepository_Delete_NotFound(t *testing.T) {
	repo, mock := newContactTestFixture(t)
	defer mock.Close()

	mock.ExpectExec("DELETE FROM contact_messages WHERE id =").
		WithArgs("missing-id").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := repo.Delete(context.Background(), "missing-id")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound), "expected ErrNotFound, got: %v", err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
