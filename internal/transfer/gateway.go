package transfer

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/hrgrifes/atelier-backend/internal/content"
	pkgerrors "github.com/hrgrifes/atelier-backend/pkg/errors"
	"github.com/hrgrifes/atelier-backend/pkg/logger"
)

type contentService interface {
	Snapshot(ctx context.Context) content.Content
	Import(ctx context.Context, doc content.Content, confirm bool) error
}

// Document is an export: the canonical site document plus download metadata.
type Document struct {
	Filename   string
	ExportedAt time.Time
	Body       []byte
}

// Gateway moves whole site documents in and out of the store. Export hands
// back the canonical encoding as a downloadable file; import validates an
// uploaded document before swapping it in.
type Gateway struct {
	svc      contentService
	validate *validator.Validate
	logg     *logger.Logger
	now      func() time.Time
}

// NewGateway wires the transfer gateway.
func NewGateway(svc contentService, logg *logger.Logger) *Gateway {
	return &Gateway{
		svc:      svc,
		validate: validator.New(),
		logg:     logg,
		now:      time.Now,
	}
}

// Export returns the current document as a download. The snapshot itself is
// public data, so no session is required.
func (g *Gateway) Export(ctx context.Context) (Document, error) {
	snapshot := g.svc.Snapshot(ctx)
	body, err := snapshot.Canonical()
	if err != nil {
		return Document{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode document")
	}
	exportedAt := g.now().UTC()
	return Document{
		Filename:   fmt.Sprintf("site_content_%s.json", exportedAt.Format("20060102_150405")),
		ExportedAt: exportedAt,
		Body:       body,
	}, nil
}

// documentProbe is the structural check run before a document is trusted:
// every section must be present as an object. Unknown keys are fine, that is
// the passthrough contract.
type documentProbe struct {
	Hero     map[string]json.RawMessage `json:"hero" validate:"required"`
	Marquee  map[string]json.RawMessage `json:"marquee" validate:"required"`
	Story    map[string]json.RawMessage `json:"story" validate:"required"`
	Lookbook map[string]json.RawMessage `json:"lookbook" validate:"required"`
	RSVP     map[string]json.RawMessage `json:"rsvp" validate:"required"`
}

// Import parses and validates an uploaded document, then replaces the live
// one. The session and confirmation checks live in the content service; a
// malformed upload never reaches it.
func (g *Gateway) Import(ctx context.Context, raw []byte, confirm bool) error {
	var probe documentProbe
	if err := json.Unmarshal(raw, &probe); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "document is not valid JSON")
	}
	if err := g.validate.Struct(probe); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "document is missing sections")
	}

	var doc content.Content
	if err := json.Unmarshal(raw, &doc); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "document does not match the content shape")
	}
	if err := checkItemIDs(doc); err != nil {
		return err
	}

	if err := g.svc.Import(ctx, doc, confirm); err != nil {
		return err
	}
	if g.logg != nil {
		g.logg.Info(ctx, "imported site document")
	}
	return nil
}

func checkItemIDs(doc content.Content) error {
	seen := map[string]string{}
	for _, name := range content.SectionNames {
		sec, _ := doc.Section(name)
		for _, item := range sec.Items {
			if item.ID == "" {
				return pkgerrors.New(pkgerrors.CodeValidation, "document has an item without an id").
					WithDetails(map[string]any{"section": name})
			}
			if prior, dup := seen[item.ID]; dup {
				return pkgerrors.New(pkgerrors.CodeValidation, "document has duplicate item ids").
					WithDetails(map[string]any{"id": item.ID, "sections": []string{prior, name}})
			}
			seen[item.ID] = name
		}
	}
	return nil
}
