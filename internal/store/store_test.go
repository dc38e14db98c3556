package store

import (
	"context"
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/mindnest/backend/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(&models.User{}, &models.Idea{}, &models.Message{}))
	return gdb
}

func seedUser(t *testing.T, gdb *gorm.DB, username, role string) *models.User {
	t.Helper()
	user := &models.User{
		Username:     username,
		Email:        fmt.Sprintf("%s@example.com", username),
		PasswordHash: "x",
		Role:         role,
	}
	require.NoError(t, gdb.Create(user).Error)
	return user
}

func TestUserStoreUniqueEmail(t *testing.T) {
	gdb := newTestDB(t)
	users := NewUserStore(gdb)
	ctx := context.Background()

	first := &models.User{Username: "ana", Email: "ana@example.com", PasswordHash: "x"}
	require.NoError(t, users.Create(ctx, first))

	dup := &models.User{Username: "ana2", Email: "ana@example.com", PasswordHash: "x"}
	err := users.Create(ctx, dup)
	require.ErrorIs(t, err, ErrConflict)
}

func TestUserStoreByIDNotFound(t *testing.T) {
	gdb := newTestDB(t)
	users := NewUserStore(gdb)

	_, err := users.ByID(context.Background(), 999)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestUserStoreUpdate(t *testing.T) {
	gdb := newTestDB(t)
	users := NewUserStore(gdb)
	ctx := context.Background()
	u := seedUser(t, gdb, "ana", models.RoleParticipant)

	updated, err := users.Update(ctx, u.ID, "ana-renamed", "")
	require.NoError(t, err)
	require.Equal(t, "ana-renamed", updated.Username)
	require.Equal(t, "ana@example.com", updated.Email)

	_, err = users.Update(ctx, 999, "ghost", "")
	require.ErrorIs(t, err, ErrNotFound)
}
