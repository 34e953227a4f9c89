package records

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Well-known record keys. The content document and the cart list live under
// stable keys so a reload always finds them.
const (
	KeySiteContent = "site_content"
	KeySiteCart    = "site_cart"
)

// Record is a durable key/document pair.
type Record struct {
	Key       string    `gorm:"column:key;primaryKey"`
	Doc       string    `gorm:"column:doc;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

// TableName pins the goose-managed table.
func (Record) TableName() string {
	return "records"
}

// Repository encapsulates record persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a records repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Get returns the stored document and whether the key exists.
func (r *Repository) Get(ctx context.Context, key string) (string, bool, error) {
	var record Record
	err := r.db.WithContext(ctx).First(&record, "key = ?", key).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return record.Doc, true, nil
}

// Exists reports whether a record is stored under the key.
func (r *Repository) Exists(ctx context.Context, key string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Record{}).Where("key = ?", key).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Upsert writes the document under the key, replacing any prior value.
func (r *Repository) Upsert(ctx context.Context, key, doc string) error {
	if strings.TrimSpace(key) == "" {
		return gorm.ErrInvalidValue
	}
	record := Record{Key: key, Doc: doc, UpdatedAt: time.Now().UTC()}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"doc", "updated_at"}),
		}).
		Create(&record).
		Error
}

// Delete removes the record if it exists.
func (r *Repository) Delete(ctx context.Context, key string) error {
	return r.db.WithContext(ctx).Delete(&Record{}, "key = ?", key).Error
}
