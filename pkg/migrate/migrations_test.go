package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tahmidr/matrimony-backend/pkg/migrate"
)

func TestInitMigrationContainsCoreTables(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_init_schema.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no init migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TABLE users",
		"CREATE UNIQUE INDEX idx_users_email ON users (email)",
		"CREATE TABLE biodatas",
		"CREATE UNIQUE INDEX idx_biodatas_biodata_no ON biodatas (biodata_no)",
		"CREATE UNIQUE INDEX idx_biodatas_owner_email ON biodatas (owner_email)",
		"CREATE TABLE favourites",
		"CREATE UNIQUE INDEX idx_favourites_user_biodata ON favourites (user_email, biodata_id)",
		"CREATE TABLE contact_requests",
		"DROP TABLE contact_requests",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestMigrationsDirIsValid(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("validate migrations dir: %v", err)
	}
}
