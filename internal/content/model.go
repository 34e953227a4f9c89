package content

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Section names of the site document.
const (
	SectionHero     = "hero"
	SectionMarquee  = "marquee"
	SectionStory    = "story"
	SectionLookbook = "lookbook"
	SectionRSVP     = "rsvp"
)

// SectionNames lists every section in document order.
var SectionNames = []string{SectionHero, SectionMarquee, SectionStory, SectionLookbook, SectionRSVP}

// IsCollectionSection reports whether the section carries an ordered item list.
func IsCollectionSection(name string) bool {
	return name == SectionStory || name == SectionLookbook
}

// Theme holds the site palette. Colors are opaque tokens; the store never
// validates their format.
type Theme struct {
	Primary    string `json:"primary"`
	Background string `json:"background"`
	Secondary  string `json:"secondary"`
}

// IsZero reports whether no palette was loaded, which triggers the default
// backfill for documents saved before themes existed.
func (t Theme) IsZero() bool {
	return t == Theme{}
}

// Item is a single catalog entry. The named fields are the ones the editor
// manipulates; every unknown field on an incoming document (price, tags,
// whatever a later revision adds) is captured in Extra and re-emitted
// verbatim on marshal.
type Item struct {
	ID          string
	Title       string
	Subtitle    string
	Category    string
	Image       string
	Description string

	Extra map[string]json.RawMessage
}

var itemKnownFields = []string{"id", "title", "subtitle", "category", "image", "description"}

// Field returns the value of a known field plus whether the name is known.
func (i *Item) Field(name string) (string, bool) {
	switch name {
	case "id":
		return i.ID, true
	case "title":
		return i.Title, true
	case "subtitle":
		return i.Subtitle, true
	case "category":
		return i.Category, true
	case "image":
		return i.Image, true
	case "description":
		return i.Description, true
	}
	return "", false
}

// SetField writes a known field, or records the value as a passthrough field
// when the name is unknown.
func (i *Item) SetField(name, value string) {
	switch name {
	case "id":
		i.ID = value
	case "title":
		i.Title = value
	case "subtitle":
		i.Subtitle = value
	case "category":
		i.Category = value
	case "image":
		i.Image = value
	case "description":
		i.Description = value
	default:
		if i.Extra == nil {
			i.Extra = map[string]json.RawMessage{}
		}
		raw, _ := json.Marshal(value)
		i.Extra[name] = raw
	}
}

// Clone deep-copies the item.
func (i Item) Clone() Item {
	out := i
	out.Extra = cloneRawMap(i.Extra)
	return out
}

func (i Item) MarshalJSON() ([]byte, error) {
	doc := map[string]json.RawMessage{}
	for _, name := range itemKnownFields {
		value, _ := (&i).Field(name)
		raw, err := json.Marshal(value)
		if err != nil {
			return nil, err
		}
		doc[name] = raw
	}
	for name, raw := range i.Extra {
		if _, known := (&i).Field(name); known {
			continue
		}
		doc[name] = raw
	}
	return json.Marshal(doc)
}

func (i *Item) UnmarshalJSON(data []byte) error {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}

	*i = Item{}
	for name, raw := range doc {
		if _, known := i.Field(name); known {
			var value string
			if err := json.Unmarshal(raw, &value); err != nil {
				return fmt.Errorf("item field %q: %w", name, err)
			}
			switch name {
			case "id":
				i.ID = value
			case "title":
				i.Title = value
			case "subtitle":
				i.Subtitle = value
			case "category":
				i.Category = value
			case "image":
				i.Image = value
			case "description":
				i.Description = value
			}
			continue
		}
		if i.Extra == nil {
			i.Extra = map[string]json.RawMessage{}
		}
		i.Extra[name] = append(json.RawMessage(nil), raw...)
	}
	return nil
}

// Section is a named content grouping: free-form text fields, an optional
// ordered item list (story/lookbook), and raw passthrough for anything else a
// document carries (the lookbook feature blurbs, future fields).
type Section struct {
	Fields map[string]string
	Items  []Item
	Extra  map[string]json.RawMessage
}

// Clone deep-copies the section.
func (s Section) Clone() Section {
	out := Section{}
	if s.Fields != nil {
		out.Fields = make(map[string]string, len(s.Fields))
		for k, v := range s.Fields {
			out.Fields[k] = v
		}
	}
	if s.Items != nil {
		out.Items = make([]Item, len(s.Items))
		for idx, item := range s.Items {
			out.Items[idx] = item.Clone()
		}
	}
	out.Extra = cloneRawMap(s.Extra)
	return out
}

func (s Section) MarshalJSON() ([]byte, error) {
	doc := map[string]json.RawMessage{}
	for name, value := range s.Fields {
		raw, err := json.Marshal(value)
		if err != nil {
			return nil, err
		}
		doc[name] = raw
	}
	for name, raw := range s.Extra {
		doc[name] = raw
	}
	if s.Items != nil {
		raw, err := json.Marshal(s.Items)
		if err != nil {
			return nil, err
		}
		doc["items"] = raw
	}
	return json.Marshal(doc)
}

func (s *Section) UnmarshalJSON(data []byte) error {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}

	*s = Section{}
	for name, raw := range doc {
		if name == "items" {
			var items []Item
			if err := json.Unmarshal(raw, &items); err != nil {
				return fmt.Errorf("section items: %w", err)
			}
			s.Items = items
			continue
		}
		var value string
		if err := json.Unmarshal(raw, &value); err == nil {
			if s.Fields == nil {
				s.Fields = map[string]string{}
			}
			s.Fields[name] = value
			continue
		}
		if s.Extra == nil {
			s.Extra = map[string]json.RawMessage{}
		}
		s.Extra[name] = append(json.RawMessage(nil), raw...)
	}
	return nil
}

// Content is the root site document.
type Content struct {
	Theme    Theme
	Hero     Section
	Marquee  Section
	Story    Section
	Lookbook Section
	RSVP     Section

	Extra map[string]json.RawMessage
}

// Section returns a pointer to the named section.
func (c *Content) Section(name string) (*Section, bool) {
	switch name {
	case SectionHero:
		return &c.Hero, true
	case SectionMarquee:
		return &c.Marquee, true
	case SectionStory:
		return &c.Story, true
	case SectionLookbook:
		return &c.Lookbook, true
	case SectionRSVP:
		return &c.RSVP, true
	}
	return nil, false
}

// Clone deep-copies the document.
func (c Content) Clone() Content {
	out := Content{Theme: c.Theme}
	out.Hero = c.Hero.Clone()
	out.Marquee = c.Marquee.Clone()
	out.Story = c.Story.Clone()
	out.Lookbook = c.Lookbook.Clone()
	out.RSVP = c.RSVP.Clone()
	out.Extra = cloneRawMap(c.Extra)
	return out
}

// Canonical returns the stable JSON encoding used for persistence, export, and
// equality checks (map keys marshal in sorted order).
func (c Content) Canonical() ([]byte, error) {
	return json.Marshal(c)
}

// Equal compares two documents by canonical encoding.
func (c Content) Equal(other Content) bool {
	a, errA := c.Canonical()
	b, errB := other.Canonical()
	if errA != nil || errB != nil {
		return false
	}
	return bytes.Equal(a, b)
}

func (c Content) MarshalJSON() ([]byte, error) {
	doc := map[string]json.RawMessage{}

	themeRaw, err := json.Marshal(c.Theme)
	if err != nil {
		return nil, err
	}
	doc["theme"] = themeRaw

	for _, name := range SectionNames {
		section, _ := (&c).Section(name)
		raw, err := json.Marshal(*section)
		if err != nil {
			return nil, err
		}
		doc[name] = raw
	}
	for name, raw := range c.Extra {
		if _, known := (&c).Section(name); known || name == "theme" {
			continue
		}
		doc[name] = raw
	}
	return json.Marshal(doc)
}

func (c *Content) UnmarshalJSON(data []byte) error {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}

	*c = Content{}
	for name, raw := range doc {
		if name == "theme" {
			if err := json.Unmarshal(raw, &c.Theme); err != nil {
				return fmt.Errorf("theme: %w", err)
			}
			continue
		}
		if section, known := c.Section(name); known {
			if err := json.Unmarshal(raw, section); err != nil {
				return fmt.Errorf("section %q: %w", name, err)
			}
			continue
		}
		if c.Extra == nil {
			c.Extra = map[string]json.RawMessage{}
		}
		c.Extra[name] = append(json.RawMessage(nil), raw...)
	}
	return nil
}

func cloneRawMap(in map[string]json.RawMessage) map[string]json.RawMessage {
	if in == nil {
		return nil
	}
	out := make(map[string]json.RawMessage, len(in))
	for k, v := range in {
		out[k] = append(json.RawMessage(nil), v...)
	}
	return out
}
