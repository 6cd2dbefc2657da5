package upsert

import (
	"fmt"

	"gorm.io/gorm"
)

// Relation is one child collection of a parent.
type Relation interface {
	Name() string
	// Supplied reports whether new children were provided; unsupplied
	// relations are left untouched by Update.
	Supplied() bool

	clear(tx *gorm.DB, parentID uint) (released []string, err error)
	insert(tx *gorm.DB, s *session, parentID uint) error
}

// ImageSpec declares an image child table.
type ImageSpec struct {
	Name       string
	Dir        string // media subdirectory for uploads
	ForeignKey string // column referencing the parent
	Model      func() any
	NewRow     func(parentID uint, position int, path, url string) any
}

// ImageRelation materializes uploads and URL descriptors as image rows.
type ImageRelation struct {
	spec     ImageSpec
	values   []ImageValue
	supplied bool
}

// NewImageRelation builds the image relation for one request.
func NewImageRelation(spec ImageSpec, files []Uploaded, descriptors []Descriptor) *ImageRelation {
	return &ImageRelation{
		spec:     spec,
		values:   ImageValues(files, descriptors),
		supplied: len(files) > 0 || len(descriptors) > 0,
	}
}

func (r *ImageRelation) Name() string   { return r.spec.Name }
func (r *ImageRelation) Supplied() bool { return r.supplied }

// Values returns the ordered image values.
func (r *ImageRelation) Values() []ImageValue { return r.values }

func (r *ImageRelation) clear(tx *gorm.DB, parentID uint) ([]string, error) {
	var paths []string
	if err := tx.Model(r.spec.Model()).
		Where(r.spec.ForeignKey+" = ? AND path <> ''", parentID).
		Pluck("path", &paths).Error; err != nil {
		return nil, fmt.Errorf("collect paths: %w", err)
	}
	if err := tx.Where(r.spec.ForeignKey+" = ?", parentID).Delete(r.spec.Model()).Error; err != nil {
		return nil, err
	}
	return paths, nil
}

func (r *ImageRelation) insert(tx *gorm.DB, s *session, parentID uint) error {
	for i, v := range r.values {
		var row any
		switch v := v.(type) {
		case Uploaded:
			p, err := s.save(r.spec.Dir, v)
			if err != nil {
				return err
			}
			row = r.spec.NewRow(parentID, i, p, "")
		case ExternalURL:
			row = r.spec.NewRow(parentID, i, "", string(v))
		}
		if err := tx.Create(row).Error; err != nil {
			return err
		}
	}
	return nil
}

// RecordSpec declares a structured child table filled from descriptors.
type RecordSpec struct {
	Name       string
	ForeignKey string
	Model      func() any
	// NewRow maps a descriptor onto a row; false skips the descriptor.
	NewRow func(parentID uint, position int, d Descriptor) (any, bool)
}

// RecordRelation materializes one row per mappable descriptor.
type RecordRelation struct {
	spec        RecordSpec
	descriptors []Descriptor
}

// NewRecordRelation builds a descriptor-backed relation for one request.
func NewRecordRelation(spec RecordSpec, descriptors []Descriptor) *RecordRelation {
	return &RecordRelation{spec: spec, descriptors: descriptors}
}

func (r *RecordRelation) Name() string   { return r.spec.Name }
func (r *RecordRelation) Supplied() bool { return len(r.descriptors) > 0 }

func (r *RecordRelation) clear(tx *gorm.DB, parentID uint) ([]string, error) {
	return nil, tx.Where(r.spec.ForeignKey+" = ?", parentID).Delete(r.spec.Model()).Error
}

func (r *RecordRelation) insert(tx *gorm.DB, _ *session, parentID uint) error {
	position := 0
	for _, d := range r.descriptors {
		row, ok := r.spec.NewRow(parentID, position, d)
		if !ok {
			continue
		}
		if err := tx.Create(row).Error; err != nil {
			return err
		}
		position++
	}
	return nil
}
