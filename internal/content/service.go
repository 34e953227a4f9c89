package content

import (
	"context"
	"fmt"
	"strings"

	"github.com/hrgrifes/atelier-backend/internal/records"
	"github.com/hrgrifes/atelier-backend/pkg/auth/session"
	pkgerrors "github.com/hrgrifes/atelier-backend/pkg/errors"
	"github.com/hrgrifes/atelier-backend/pkg/logger"
	"github.com/google/uuid"
)

// Service exposes the authorization-gated operations over the content store.
//
// Every mutation demands an authenticated session in ctx; anonymous calls get
// a typed UNAUTHORIZED error and leave state untouched.
type Service interface {
	Snapshot(ctx context.Context) Content
	UpdateField(ctx context.Context, sectionName, key, value string) error
	UpdateItemField(ctx context.Context, sectionName, itemID, field, value string) error
	ReorderItems(ctx context.Context, sectionName string, items []Item) error
	AddItem(ctx context.Context, sectionName string, item Item) (Item, error)
	Import(ctx context.Context, doc Content, confirm bool) error
	Reset(ctx context.Context, confirm bool) error
}

type contentRemover interface {
	Delete(ctx context.Context, key string) error
}

type saveNotifier interface {
	RecordCleared()
}

type service struct {
	store    *Store
	repo     contentRemover
	saver    saveNotifier
	logg     *logger.Logger
	defaults Content
}

// ServiceParams groups dependencies for the content service. Saver is the
// persistence scheduler; it is told when the persisted record is deleted so
// the first-save rule applies again.
type ServiceParams struct {
	Store  *Store
	Repo   contentRemover
	Saver  saveNotifier
	Logger *logger.Logger
}

// NewService builds a content service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Store == nil {
		return nil, fmt.Errorf("content store is required")
	}
	if params.Repo == nil {
		return nil, fmt.Errorf("records repo is required")
	}
	return &service{
		store:    params.Store,
		repo:     params.Repo,
		saver:    params.Saver,
		logg:     params.Logger,
		defaults: DefaultContent(),
	}, nil
}

func (s *service) Snapshot(ctx context.Context) Content {
	return s.store.Snapshot()
}

func (s *service) UpdateField(ctx context.Context, sectionName, key, value string) error {
	if err := requireSession(ctx); err != nil {
		return err
	}
	if err := validSection(sectionName); err != nil {
		return err
	}
	if strings.TrimSpace(key) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "field key is required")
	}
	s.store.UpdateField(sectionName, key, value)
	return nil
}

func (s *service) UpdateItemField(ctx context.Context, sectionName, itemID, field, value string) error {
	if err := requireSession(ctx); err != nil {
		return err
	}
	if err := validCollectionSection(sectionName); err != nil {
		return err
	}
	if strings.TrimSpace(field) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "item field is required")
	}
	if field == "id" {
		return pkgerrors.New(pkgerrors.CodeValidation, "item id is immutable")
	}
	if !s.store.UpdateItemField(sectionName, itemID, field, value) {
		return pkgerrors.New(pkgerrors.CodeNotFound, "item not found")
	}
	return nil
}

func (s *service) ReorderItems(ctx context.Context, sectionName string, items []Item) error {
	if err := requireSession(ctx); err != nil {
		return err
	}
	if err := validCollectionSection(sectionName); err != nil {
		return err
	}

	// The sequence is trusted and stored verbatim; an id-set mismatch means
	// the caller dropped or invented items, which is logged but not refused.
	if s.logg != nil && !sameIDSet(s.store.Snapshot(), sectionName, items) {
		s.logg.Warn(s.logg.WithSection(ctx, sectionName), "reorder changed the item id set")
	}

	s.store.ReorderItems(sectionName, items)
	return nil
}

func (s *service) AddItem(ctx context.Context, sectionName string, item Item) (Item, error) {
	if err := requireSession(ctx); err != nil {
		return Item{}, err
	}
	if err := validCollectionSection(sectionName); err != nil {
		return Item{}, err
	}

	if strings.TrimSpace(item.ID) == "" {
		item.ID = uuid.NewString()
	}
	if s.store.ContainsItem(item.ID) {
		return Item{}, pkgerrors.New(pkgerrors.CodeConflict, "item id already in use")
	}

	s.store.AppendItem(sectionName, item)
	return item, nil
}

func (s *service) Import(ctx context.Context, doc Content, confirm bool) error {
	if err := requireSession(ctx); err != nil {
		return err
	}
	if !confirm {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "import requires confirmation")
	}

	next := doc.Clone()
	if next.Theme.IsZero() {
		next.Theme = s.defaults.Theme
	}
	s.store.Replace(next)
	return nil
}

func (s *service) Reset(ctx context.Context, confirm bool) error {
	if err := requireSession(ctx); err != nil {
		return err
	}
	if !confirm {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "reset requires confirmation")
	}

	// Clear the persisted copy first so a reload never resurrects the
	// replaced document.
	if err := s.repo.Delete(ctx, records.KeySiteContent); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear persisted content")
	}
	if s.saver != nil {
		s.saver.RecordCleared()
	}
	s.store.Replace(s.defaults)
	return nil
}

func requireSession(ctx context.Context) error {
	if _, ok := session.FromContext(ctx); !ok {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	return nil
}

func validSection(name string) error {
	for _, known := range SectionNames {
		if name == known {
			return nil
		}
	}
	return pkgerrors.New(pkgerrors.CodeValidation, "unknown section").WithDetails(map[string]any{"section": name})
}

func validCollectionSection(name string) error {
	if err := validSection(name); err != nil {
		return err
	}
	if !IsCollectionSection(name) {
		return pkgerrors.New(pkgerrors.CodeValidation, "section has no items").WithDetails(map[string]any{"section": name})
	}
	return nil
}

func sameIDSet(current Content, sectionName string, next []Item) bool {
	sec, ok := current.Section(sectionName)
	if !ok {
		return false
	}
	if len(sec.Items) != len(next) {
		return false
	}
	seen := make(map[string]int, len(sec.Items))
	for _, item := range sec.Items {
		seen[item.ID]++
	}
	for _, item := range next {
		seen[item.ID]--
	}
	for _, count := range seen {
		if count != 0 {
			return false
		}
	}
	return true
}
