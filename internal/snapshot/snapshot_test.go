package snapshot

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resource-console/models"
)

var savedAt = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func setupTestStore() (*Store, redismock.ClientMock) {
	db, mock := redismock.NewClientMock()
	s := New(db, time.Hour)
	s.now = func() time.Time { return savedAt }
	return s, mock
}

func TestSave(t *testing.T) {
	s, mock := setupTestStore()
	tasks := []models.Task{{ID: 1, Title: "Write report"}}

	mock.ExpectSet("snapshot:tasks",
		`{"saved_at":"2024-05-01T12:00:00Z","items":[{"id":1,"title":"Write report","description":"","completed":false}]}`,
		time.Hour).SetVal("OK")

	err := Save(context.Background(), s, "tasks", tasks)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSave_NilItemsStoredAsEmpty(t *testing.T) {
	s, mock := setupTestStore()

	mock.ExpectSet("snapshot:tasks", `{"saved_at":"2024-05-01T12:00:00Z","items":[]}`, time.Hour).SetVal("OK")

	assert.NoError(t, Save[models.Task](context.Background(), s, "tasks", nil))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoad(t *testing.T) {
	s, mock := setupTestStore()

	mock.ExpectGet("snapshot:expenses").SetVal(
		`{"saved_at":"2024-05-01T12:00:00Z","items":[{"id":7,"amount":12.5,"category":"food","date":"2024-01-01"}]}`)

	snap, found, err := Load[models.Expense](context.Background(), s, "expenses")

	require.NoError(t, err)
	assert.True(t, found)
	assert.True(t, savedAt.Equal(snap.SavedAt))
	require.Len(t, snap.Items, 1)
	assert.Equal(t, int64(7), snap.Items[0].ID)
	assert.Equal(t, "2024-01-01", snap.Items[0].Date.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoad_Missing(t *testing.T) {
	s, mock := setupTestStore()

	mock.ExpectGet("snapshot:venues").RedisNil()

	_, found, err := Load[models.Venue](context.Background(), s, "venues")

	assert.NoError(t, err)
	assert.False(t, found)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoad_Errors(t *testing.T) {
	s, mock := setupTestStore()

	mock.ExpectGet("snapshot:venues").SetErr(errors.New("connection reset"))
	_, _, err := Load[models.Venue](context.Background(), s, "venues")
	assert.ErrorContains(t, err, "connection reset")

	mock.ExpectGet("snapshot:venues").SetVal("not json")
	_, found, err := Load[models.Venue](context.Background(), s, "venues")
	assert.Error(t, err)
	assert.False(t, found)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClear(t *testing.T) {
	s, mock := setupTestStore()

	mock.ExpectDel("snapshot:bookings").SetVal(1)

	assert.NoError(t, s.Clear(context.Background(), "bookings"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
