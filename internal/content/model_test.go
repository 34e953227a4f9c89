package content

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestItemRoundTripKeepsUnknownFields(t *testing.T) {
	src := []byte(`{"id":"7","title":"Vestido Aurora","subtitle":"","category":"Atelier","image":"","description":"","price":"R$ 1.290,00","tags":["novo","limitado"]}`)

	var item Item
	if err := json.Unmarshal(src, &item); err != nil {
		t.Fatalf("unmarshal item: %v", err)
	}
	if item.ID != "7" || item.Title != "Vestido Aurora" {
		t.Fatalf("known fields not parsed: %+v", item)
	}
	if string(item.Extra["price"]) != `"R$ 1.290,00"` {
		t.Fatalf("price not preserved raw: %s", item.Extra["price"])
	}

	out, err := json.Marshal(item)
	if err != nil {
		t.Fatalf("marshal item: %v", err)
	}
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(out, &doc); err != nil {
		t.Fatalf("reparse item: %v", err)
	}
	if string(doc["price"]) != `"R$ 1.290,00"` {
		t.Fatalf("price lost on marshal: %s", out)
	}
	if string(doc["tags"]) != `["novo","limitado"]` {
		t.Fatalf("tags lost on marshal: %s", out)
	}
}

func TestItemSetFieldUnknownGoesToExtra(t *testing.T) {
	var item Item
	item.SetField("title", "Casaco Nuvem")
	item.SetField("price", "R$ 890,00")

	if item.Title != "Casaco Nuvem" {
		t.Fatalf("title = %q", item.Title)
	}
	if string(item.Extra["price"]) != `"R$ 890,00"` {
		t.Fatalf("price extra = %s", item.Extra["price"])
	}
	if _, known := item.Field("price"); known {
		t.Fatal("price should not be a known field")
	}
}

func TestSectionRoundTrip(t *testing.T) {
	src := []byte(`{"title":"Lookbook","items":[{"id":"a","title":"Look 01","subtitle":"","category":"","image":"","description":""}],"features":[{"icon":"sparkle","label":"Feito à mão"}]}`)

	var sec Section
	if err := json.Unmarshal(src, &sec); err != nil {
		t.Fatalf("unmarshal section: %v", err)
	}
	if sec.Fields["title"] != "Lookbook" {
		t.Fatalf("fields = %+v", sec.Fields)
	}
	if len(sec.Items) != 1 || sec.Items[0].ID != "a" {
		t.Fatalf("items = %+v", sec.Items)
	}
	if _, ok := sec.Extra["features"]; !ok {
		t.Fatal("features not preserved")
	}

	out, err := json.Marshal(sec)
	if err != nil {
		t.Fatalf("marshal section: %v", err)
	}
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(out, &doc); err != nil {
		t.Fatalf("reparse section: %v", err)
	}
	for _, key := range []string{"title", "items", "features"} {
		if _, ok := doc[key]; !ok {
			t.Fatalf("key %q missing from %s", key, out)
		}
	}
}

func TestContentRoundTripPreservesUnknownSections(t *testing.T) {
	original := DefaultContent()
	original.Extra = map[string]json.RawMessage{
		"footer": json.RawMessage(`{"text":"© 2025"}`),
	}

	raw, err := original.Canonical()
	if err != nil {
		t.Fatalf("canonical: %v", err)
	}

	var reloaded Content
	if err := json.Unmarshal(raw, &reloaded); err != nil {
		t.Fatalf("unmarshal content: %v", err)
	}
	if !reloaded.Equal(original) {
		t.Fatal("round trip changed the document")
	}
	if string(reloaded.Extra["footer"]) != `{"text":"© 2025"}` {
		t.Fatalf("footer = %s", reloaded.Extra["footer"])
	}
}

func TestContentCanonicalIsStable(t *testing.T) {
	doc := DefaultContent()
	a, err := doc.Canonical()
	if err != nil {
		t.Fatalf("canonical: %v", err)
	}
	b, err := doc.Clone().Canonical()
	if err != nil {
		t.Fatalf("canonical clone: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Fatal("canonical encoding not stable across clones")
	}
}

func TestContentCloneIsIndependent(t *testing.T) {
	doc := DefaultContent()
	clone := doc.Clone()

	clone.Hero.Fields["title"] = "changed"
	clone.Story.Items[0].Title = "changed"

	if doc.Hero.Fields["title"] == "changed" {
		t.Fatal("clone shares hero fields")
	}
	if doc.Story.Items[0].Title == "changed" {
		t.Fatal("clone shares story items")
	}
}

func TestThemeIsZero(t *testing.T) {
	if !(Theme{}).IsZero() {
		t.Fatal("empty theme should be zero")
	}
	if (Theme{Primary: "#fff"}).IsZero() {
		t.Fatal("populated theme should not be zero")
	}
}

func TestIsCollectionSection(t *testing.T) {
	for _, name := range SectionNames {
		got := IsCollectionSection(name)
		want := name == SectionStory || name == SectionLookbook
		if got != want {
			t.Fatalf("IsCollectionSection(%q) = %v", name, got)
		}
	}
}
