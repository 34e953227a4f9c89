package content

import (
	"context"
	"errors"
	"testing"
)

type fakeReader struct {
	doc   string
	found bool
	err   error
}

func (f *fakeReader) Get(ctx context.Context, key string) (string, bool, error) {
	return f.doc, f.found, f.err
}

func TestLoadMissingRecordUsesDefaults(t *testing.T) {
	doc, persisted := Load(context.Background(), &fakeReader{found: false}, nil)
	if persisted {
		t.Fatal("missing record reported as persisted")
	}
	if !doc.Equal(DefaultContent()) {
		t.Fatal("defaults not returned")
	}
}

func TestLoadReadErrorUsesDefaults(t *testing.T) {
	doc, persisted := Load(context.Background(), &fakeReader{err: errors.New("boom")}, nil)
	if persisted {
		t.Fatal("failed read reported as persisted")
	}
	if !doc.Equal(DefaultContent()) {
		t.Fatal("defaults not returned")
	}
}

func TestLoadCorruptDocumentUsesDefaults(t *testing.T) {
	doc, persisted := Load(context.Background(), &fakeReader{doc: "{not json", found: true}, nil)
	if persisted {
		t.Fatal("corrupt record reported as persisted")
	}
	if !doc.Equal(DefaultContent()) {
		t.Fatal("defaults not returned")
	}
}

func TestLoadPersistedDocument(t *testing.T) {
	saved := DefaultContent()
	saved.Hero.Fields["title"] = "Do Banco"
	raw, err := saved.Canonical()
	if err != nil {
		t.Fatalf("canonical: %v", err)
	}

	doc, persisted := Load(context.Background(), &fakeReader{doc: string(raw), found: true}, nil)
	if !persisted {
		t.Fatal("persisted record not reported")
	}
	if doc.Hero.Fields["title"] != "Do Banco" {
		t.Fatalf("title = %q", doc.Hero.Fields["title"])
	}
}

func TestLoadBackfillsMissingTheme(t *testing.T) {
	doc, persisted := Load(context.Background(), &fakeReader{
		doc:   `{"hero":{"title":"Antigo"},"marquee":{},"story":{"items":[]},"lookbook":{"items":[]},"rsvp":{}}`,
		found: true,
	}, nil)
	if !persisted {
		t.Fatal("legacy record not reported as persisted")
	}
	if doc.Theme.IsZero() {
		t.Fatal("theme not backfilled")
	}
	if doc.Theme != DefaultContent().Theme {
		t.Fatalf("theme = %+v", doc.Theme)
	}
	if doc.Hero.Fields["title"] != "Antigo" {
		t.Fatalf("title = %q", doc.Hero.Fields["title"])
	}
}
