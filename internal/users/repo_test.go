package users

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/tahmidr/matrimony-backend/pkg/db/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := conn.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return conn
}

func mustCreateTestUser(t *testing.T, db *gorm.DB, email, role string) *models.User {
	t.Helper()
	user := &models.User{
		ID:       uuid.New(),
		Email:    email,
		Name:     "Repo Tester",
		Role:     role,
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func TestRepositoryCreateAndFindByEmail(t *testing.T) {
	repo := NewRepository(newTestDB(t))
	ctx := context.Background()

	created, err := repo.Create(ctx, CreateUserDTO{
		Email: "amina@example.com",
		Name:  "Amina",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Role != "user" {
		t.Fatalf("expected default role user, got %s", created.Role)
	}

	found, err := repo.FindByEmail(ctx, "amina@example.com")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if found.Name != "Amina" {
		t.Fatalf("unexpected name %s", found.Name)
	}
}

func TestRepositoryUpsertPreservesRole(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	mustCreateTestUser(t, db, "admin@example.com", "admin")

	photo := "https://example.com/p.png"
	updated, err := repo.Upsert(ctx, CreateUserDTO{
		Email:    "admin@example.com",
		Name:     "Renamed Admin",
		PhotoURL: &photo,
	})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if updated.Role != "admin" {
		t.Fatalf("upsert must not overwrite role, got %s", updated.Role)
	}
	if updated.Name != "Renamed Admin" {
		t.Fatalf("expected name refresh, got %s", updated.Name)
	}
	if updated.PhotoURL == nil || *updated.PhotoURL != photo {
		t.Fatalf("expected photo refresh")
	}

	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected a single row after upsert, got %d", count)
	}
}

func TestRepositoryListSearchAndPaginate(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		mustCreateTestUser(t, db, fmt.Sprintf("match%d@example.com", i), "user")
	}
	mustCreateTestUser(t, db, "other@elsewhere.org", "user")

	users, total, err := repo.List(ctx, "example.com", 2, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 5 {
		t.Fatalf("expected 5 matches, got %d", total)
	}
	if len(users) != 2 {
		t.Fatalf("expected page of 2, got %d", len(users))
	}
}

func TestRepositoryUpdateRole(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	mustCreateTestUser(t, db, "promote@example.com", "user")

	affected, err := repo.UpdateRole(ctx, "promote@example.com", "admin")
	if err != nil {
		t.Fatalf("update role: %v", err)
	}
	if affected != 1 {
		t.Fatalf("expected one row affected, got %d", affected)
	}

	affected, err = repo.UpdateRole(ctx, "missing@example.com", "admin")
	if err != nil {
		t.Fatalf("update role missing: %v", err)
	}
	if affected != 0 {
		t.Fatalf("expected zero rows affected, got %d", affected)
	}
}
