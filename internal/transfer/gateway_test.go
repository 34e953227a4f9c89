package transfer

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/hrgrifes/atelier-backend/internal/content"
	pkgerrors "github.com/hrgrifes/atelier-backend/pkg/errors"
)

type fakeContent struct {
	snapshot content.Content
	imported *content.Content
	confirm  bool
}

func (f *fakeContent) Snapshot(ctx context.Context) content.Content {
	return f.snapshot.Clone()
}

func (f *fakeContent) Import(ctx context.Context, doc content.Content, confirm bool) error {
	clone := doc.Clone()
	f.imported = &clone
	f.confirm = confirm
	return nil
}

func TestExportProducesCanonicalDownload(t *testing.T) {
	svc := &fakeContent{snapshot: content.DefaultContent()}
	gw := NewGateway(svc, nil)

	doc, err := gw.Export(context.Background())
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.HasPrefix(doc.Filename, "site_content_") || !strings.HasSuffix(doc.Filename, ".json") {
		t.Fatalf("filename = %q", doc.Filename)
	}

	var parsed content.Content
	if err := json.Unmarshal(doc.Body, &parsed); err != nil {
		t.Fatalf("parse export: %v", err)
	}
	if !parsed.Equal(svc.snapshot) {
		t.Fatal("export does not match the snapshot")
	}
}

func TestImportRoundTripsExport(t *testing.T) {
	svc := &fakeContent{snapshot: content.DefaultContent()}
	gw := NewGateway(svc, nil)

	doc, err := gw.Export(context.Background())
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if err := gw.Import(context.Background(), doc.Body, true); err != nil {
		t.Fatalf("import: %v", err)
	}
	if svc.imported == nil || !svc.imported.Equal(svc.snapshot) {
		t.Fatal("import did not pass the document through unchanged")
	}
	if !svc.confirm {
		t.Fatal("confirm flag not forwarded")
	}
}

func TestImportRejectsMalformedDocuments(t *testing.T) {
	gw := NewGateway(&fakeContent{snapshot: content.DefaultContent()}, nil)
	ctx := context.Background()

	cases := []struct {
		name string
		raw  string
	}{
		{"not json", "{broken"},
		{"missing sections", `{"hero":{"title":"x"}}`},
		{"blank item id", `{"hero":{},"marquee":{},"story":{"items":[{"id":"","title":"x"}]},"lookbook":{},"rsvp":{}}`},
		{"duplicate item id", `{"hero":{},"marquee":{},"story":{"items":[{"id":"1"}]},"lookbook":{"items":[{"id":"1"}]},"rsvp":{}}`},
	}
	for _, tc := range cases {
		err := gw.Import(ctx, []byte(tc.raw), true)
		typed := pkgerrors.As(err)
		if typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Fatalf("%s: %v", tc.name, err)
		}
	}
}

func TestImportKeepsUnknownKeys(t *testing.T) {
	svc := &fakeContent{snapshot: content.DefaultContent()}
	gw := NewGateway(svc, nil)

	raw := `{"hero":{"title":"Novo"},"marquee":{},"story":{"items":[]},"lookbook":{"items":[]},"rsvp":{},"footer":{"text":"© 2025"}}`
	if err := gw.Import(context.Background(), []byte(raw), true); err != nil {
		t.Fatalf("import: %v", err)
	}
	if string(svc.imported.Extra["footer"]) != `{"text":"© 2025"}` {
		t.Fatalf("footer = %s", svc.imported.Extra["footer"])
	}
}
