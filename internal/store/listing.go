package store

import (
	"context"
	"strings"
	"unicode/utf8"

	"gorm.io/gorm"

	"realty_portal/internal/domain"
	"realty_portal/internal/media"
	"realty_portal/internal/upsert"
)

// ListingSchema declares the listing columns accepted from clients.
var ListingSchema = upsert.Schema{
	{Name: "title", Kind: upsert.String, Required: true, Rule: "max=255"},
	{Name: "type", Kind: upsert.Choice, Required: true, Rule: "oneof=sale lease"},
	{Name: "category", Kind: upsert.String, Rule: "max=100"},
	{Name: "price", Kind: upsert.String, Required: true, Rule: "max=100"},
	{Name: "location", Kind: upsert.String, Rule: "max=255"},
	{Name: "description", Kind: upsert.Text},
	{Name: "living_room_sqm", Kind: upsert.Number, Rule: "gte=0"},
	{Name: "kitchen_sqm", Kind: upsert.Number, Rule: "gte=0"},
}

var listingImages = upsert.ImageSpec{
	Name:       "images",
	Dir:        "realty_images",
	ForeignKey: "listing_id",
	Model:      func() any { return &domain.ListingImage{} },
	NewRow: func(parentID uint, position int, path, url string) any {
		return &domain.ListingImage{ListingID: parentID, Position: position, Path: path, URL: url}
	},
}

var listingRooms = upsert.RecordSpec{
	Name:       "rooms",
	ForeignKey: "listing_id",
	Model:      func() any { return &domain.Room{} },
	NewRow: func(parentID uint, position int, d upsert.Descriptor) (any, bool) {
		name, ok := d.String("name")
		name = strings.TrimSpace(name)
		if !ok || name == "" || utf8.RuneCountInString(name) > 100 {
			return nil, false
		}
		sqm, ok := d.Number("sqm")
		if !ok || sqm < 0 {
			return nil, false
		}
		return &domain.Room{ListingID: parentID, Position: position, Name: name, Sqm: sqm}, true
	},
}

// ListingInput is one create/update request after transport decoding.
type ListingInput struct {
	Fields map[string]string   // raw parent fields
	Files  []upsert.Uploaded   // uploaded images, arrival order
	Images []upsert.Descriptor // image URL descriptors
	Rooms  []upsert.Descriptor // room descriptors
}

// ListingFilter narrows List.
type ListingFilter struct {
	Type     string
	Category string
	Page     int
	PageSize int
}

// ListingStore persists listings with their images and rooms.
type ListingStore struct {
	db     *gorm.DB
	engine *upsert.Engine
}

func NewListingStore(db *gorm.DB, files media.Store) *ListingStore {
	return &ListingStore{db: db, engine: upsert.NewEngine(db, files)}
}

func (s *ListingStore) relations(in ListingInput) []upsert.Relation {
	return []upsert.Relation{
		upsert.NewImageRelation(listingImages, in.Files, in.Images),
		upsert.NewRecordRelation(listingRooms, in.Rooms),
	}
}

// Create validates the fields and inserts the listing with its children.
func (s *ListingStore) Create(ctx context.Context, in ListingInput) (*domain.Listing, error) {
	vals, err := ListingSchema.Validate(in.Fields, false)
	if err != nil {
		return nil, err
	}
	l := &domain.Listing{}
	applyListing(l, vals)
	if err := s.engine.Create(ctx, l, s.relations(in)...); err != nil {
		return nil, err
	}
	return s.Get(ctx, l.ID)
}

// Update patches supplied fields and replaces supplied child collections.
// With partial unset every required field must be present, as for PUT.
func (s *ListingStore) Update(ctx context.Context, id uint, in ListingInput, partial bool) (*domain.Listing, error) {
	l, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	vals, err := ListingSchema.Validate(in.Fields, partial)
	if err != nil {
		return nil, err
	}
	applyListing(l, vals)
	if err := s.engine.Update(ctx, l, s.relations(in)...); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// Delete removes the listing, its images and its rooms.
func (s *ListingStore) Delete(ctx context.Context, id uint) error {
	return s.engine.Delete(ctx, &domain.Listing{ID: id}, s.relations(ListingInput{})...)
}

// Get loads a listing with ordered children.
func (s *ListingStore) Get(ctx context.Context, id uint) (*domain.Listing, error) {
	var l domain.Listing
	if err := s.preload(ctx).First(&l, id).Error; err != nil {
		return nil, err
	}
	return &l, nil
}

// List returns one page of listings, newest first, with the total count.
func (s *ListingStore) List(ctx context.Context, f ListingFilter) ([]domain.Listing, int64, error) {
	filter := func(db *gorm.DB) *gorm.DB {
		if f.Type != "" {
			db = db.Where("type = ?", f.Type)
		}
		if f.Category != "" {
			db = db.Where("category = ?", f.Category)
		}
		return db
	}
	var total int64
	if err := s.db.WithContext(ctx).Model(&domain.Listing{}).Scopes(filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var listings []domain.Listing
	err := s.preload(ctx).Scopes(filter, paginate(f.Page, f.PageSize)).
		Order("created_at desc, id desc").
		Find(&listings).Error
	return listings, total, err
}

// Search matches the query against text columns; it backs search when no index is configured.
func (s *ListingStore) Search(ctx context.Context, query string, limit int) ([]domain.Listing, error) {
	like := "%" + strings.TrimSpace(query) + "%"
	var listings []domain.Listing
	err := s.preload(ctx).
		Where("title LIKE ? OR location LIKE ? OR category LIKE ? OR description LIKE ?", like, like, like, like).
		Order("created_at desc, id desc").
		Limit(limit).
		Find(&listings).Error
	return listings, err
}

// ByIDs loads listings keeping the order of ids; unknown ids are skipped.
func (s *ListingStore) ByIDs(ctx context.Context, ids []uint) ([]domain.Listing, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var found []domain.Listing
	if err := s.preload(ctx).Where("id IN ?", ids).Find(&found).Error; err != nil {
		return nil, err
	}
	byID := make(map[uint]domain.Listing, len(found))
	for _, l := range found {
		byID[l.ID] = l
	}
	out := make([]domain.Listing, 0, len(found))
	for _, id := range ids {
		if l, ok := byID[id]; ok {
			out = append(out, l)
		}
	}
	return out, nil
}

func (s *ListingStore) preload(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).
		Preload("Images", byPosition).
		Preload("Rooms", byPosition)
}

func byPosition(db *gorm.DB) *gorm.DB {
	return db.Order("position, id")
}

func paginate(page, pageSize int) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if page < 1 {
			page = 1
		}
		return db.Offset((page - 1) * pageSize).Limit(pageSize)
	}
}

func applyListing(l *domain.Listing, v upsert.Values) {
	v.SetString("title", &l.Title)
	if t, ok := v.String("type"); ok {
		l.Type = domain.ListingType(t)
	}
	v.SetString("category", &l.Category)
	v.SetString("price", &l.Price)
	v.SetString("location", &l.Location)
	v.SetString("description", &l.Description)
	v.SetNumber("living_room_sqm", &l.LivingRoomSqm)
	v.SetNumber("kitchen_sqm", &l.KitchenSqm)
}
