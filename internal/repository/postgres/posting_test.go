package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"volunteerhub-backend/internal/domain"
)

func TestPostingRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewPostingRepository(db)
	ctx := context.Background()

	t.Run("PrivatePostingCarriesDigest", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "organizer_id", "title", "description", "location", "visibility", "access_key_hash", "status", "created_at", "updated_at"}).
			AddRow(3, 11, "Night Shelter Help", "", "", "private", "abcdef0123", "active", time.Now(), time.Now())

		mock.ExpectQuery("SELECT (.+) FROM postings WHERE id = \\$1").
			WithArgs(int32(3)).
			WillReturnRows(rows)

		posting, err := repo.GetByID(ctx, 3)
		assert.NoError(t, err)
		assert.True(t, posting.IsPrivate())
		assert.Equal(t, "abcdef0123", posting.AccessKeyHash)
		assert.Equal(t, int32(11), *posting.OrganizerID)
	})

	t.Run("AdminPostingHasNilOrganizer", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "organizer_id", "title", "description", "location", "visibility", "access_key_hash", "status", "created_at", "updated_at"}).
			AddRow(4, nil, "Platform Drive", "", "", "public", "", "active", time.Now(), time.Now())

		mock.ExpectQuery("SELECT (.+) FROM postings WHERE id = \\$1").
			WithArgs(int32(4)).
			WillReturnRows(rows)

		posting, err := repo.GetByID(ctx, 4)
		assert.NoError(t, err)
		assert.Nil(t, posting.OrganizerID)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM postings WHERE id = \\$1").
			WithArgs(int32(99)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.GetByID(ctx, 99)
		assert.True(t, domain.IsKind(err, domain.KindNotFound))
	})
}
