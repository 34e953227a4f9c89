package migrate

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

func TestUpCreatesRecordsTable(t *testing.T) {
	conn, err := sql.Open("sqlite3", "file::memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer conn.Close()

	if err := Up(context.Background(), conn, "sqlite3"); err != nil {
		t.Fatalf("migrate up: %v", err)
	}

	if _, err := conn.Exec(`INSERT INTO records (key, doc) VALUES ('site_content', '{}')`); err != nil {
		t.Fatalf("insert into records: %v", err)
	}

	var doc string
	if err := conn.QueryRow(`SELECT doc FROM records WHERE key = 'site_content'`).Scan(&doc); err != nil {
		t.Fatalf("read record back: %v", err)
	}
	if doc != "{}" {
		t.Fatalf("unexpected doc %q", doc)
	}

	if err := Down(context.Background(), conn, "sqlite3"); err != nil {
		t.Fatalf("migrate down: %v", err)
	}
}
