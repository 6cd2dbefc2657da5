package store

import (
	"context"

	"gorm.io/gorm"

	"realty_portal/internal/domain"
	"realty_portal/internal/media"
	"realty_portal/internal/upsert"
)

// GallerySchema declares the gallery post columns accepted from clients.
var GallerySchema = upsert.Schema{
	{Name: "title", Kind: upsert.String, Required: true, Rule: "max=255"},
	{Name: "category", Kind: upsert.Choice, Required: true, Rule: "oneof=residential commercial renovation"},
	{Name: "description", Kind: upsert.Text},
}

var galleryImages = upsert.ImageSpec{
	Name:       "images",
	Dir:        "gallery_images",
	ForeignKey: "post_id",
	Model:      func() any { return &domain.GalleryImage{} },
	NewRow: func(parentID uint, position int, path, url string) any {
		return &domain.GalleryImage{PostID: parentID, Position: position, Path: path, URL: url}
	},
}

// GalleryInput is one create/update request after transport decoding.
type GalleryInput struct {
	Fields map[string]string
	Files  []upsert.Uploaded
	Images []upsert.Descriptor
}

// GalleryStore persists gallery posts with their images.
type GalleryStore struct {
	db     *gorm.DB
	engine *upsert.Engine
}

func NewGalleryStore(db *gorm.DB, files media.Store) *GalleryStore {
	return &GalleryStore{db: db, engine: upsert.NewEngine(db, files)}
}

func (s *GalleryStore) Create(ctx context.Context, in GalleryInput) (*domain.GalleryPost, error) {
	vals, err := GallerySchema.Validate(in.Fields, false)
	if err != nil {
		return nil, err
	}
	p := &domain.GalleryPost{}
	applyGallery(p, vals)
	if err := s.engine.Create(ctx, p, upsert.NewImageRelation(galleryImages, in.Files, in.Images)); err != nil {
		return nil, err
	}
	return s.Get(ctx, p.ID)
}

func (s *GalleryStore) Update(ctx context.Context, id uint, in GalleryInput, partial bool) (*domain.GalleryPost, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	vals, err := GallerySchema.Validate(in.Fields, partial)
	if err != nil {
		return nil, err
	}
	applyGallery(p, vals)
	if err := s.engine.Update(ctx, p, upsert.NewImageRelation(galleryImages, in.Files, in.Images)); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *GalleryStore) Delete(ctx context.Context, id uint) error {
	return s.engine.Delete(ctx, &domain.GalleryPost{ID: id}, upsert.NewImageRelation(galleryImages, nil, nil))
}

func (s *GalleryStore) Get(ctx context.Context, id uint) (*domain.GalleryPost, error) {
	var p domain.GalleryPost
	if err := s.db.WithContext(ctx).Preload("Images", byPosition).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// List returns one page of posts, newest first.
func (s *GalleryStore) List(ctx context.Context, category string, page, pageSize int) ([]domain.GalleryPost, int64, error) {
	filter := func(db *gorm.DB) *gorm.DB {
		if category != "" {
			return db.Where("category = ?", category)
		}
		return db
	}
	var total int64
	if err := s.db.WithContext(ctx).Model(&domain.GalleryPost{}).Scopes(filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var posts []domain.GalleryPost
	err := s.db.WithContext(ctx).Preload("Images", byPosition).
		Scopes(filter, paginate(page, pageSize)).
		Order("created_at desc, id desc").
		Find(&posts).Error
	return posts, total, err
}

func applyGallery(p *domain.GalleryPost, v upsert.Values) {
	v.SetString("title", &p.Title)
	v.SetString("category", &p.Category)
	v.SetString("description", &p.Description)
}
