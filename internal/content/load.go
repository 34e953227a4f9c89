package content

import (
	"context"
	"encoding/json"

	"github.com/hrgrifes/atelier-backend/internal/records"
	"github.com/hrgrifes/atelier-backend/pkg/logger"
)

type recordReader interface {
	Get(ctx context.Context, key string) (string, bool, error)
}

// Load reads the persisted site document, falling back to the built-in
// default when no record exists or the stored document cannot be parsed. The
// second return reports whether a persisted copy was usable, which feeds the
// scheduler's first-save bootstrap rule.
//
// Documents saved before themes existed lack the theme object; those are
// backfilled from the default rather than rejected.
func Load(ctx context.Context, repo recordReader, logg *logger.Logger) (Content, bool) {
	defaults := DefaultContent()

	doc, found, err := repo.Get(ctx, records.KeySiteContent)
	if err != nil {
		if logg != nil {
			logg.Error(ctx, "reading persisted content, using defaults", err)
		}
		return defaults, false
	}
	if !found {
		return defaults, false
	}

	var loaded Content
	if err := json.Unmarshal([]byte(doc), &loaded); err != nil {
		if logg != nil {
			logg.Error(ctx, "parsing persisted content, using defaults", err)
		}
		return defaults, false
	}

	if loaded.Theme.IsZero() {
		loaded.Theme = defaults.Theme
	}
	return loaded, true
}
