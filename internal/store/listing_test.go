package store

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"realty_portal/internal/domain"
	"realty_portal/internal/media"
	"realty_portal/internal/upsert"
)

func TestListingCreate_UploadsBeforeURLs(t *testing.T) {
	gdb := openTestDB(t)
	s := NewListingStore(gdb, media.NewMemoryStore())

	l, err := s.Create(context.Background(), ListingInput{
		Fields: listingFields(),
		Files:  files("a.png", "b.png", "c.png"),
		Images: upsert.ParseDescriptors(`[{"image":"https://x/1.jpg"},{"image":"https://x/2.jpg"}]`),
	})
	require.NoError(t, err)

	require.Len(t, l.Images, 5)
	for i := 0; i < 3; i++ {
		assert.True(t, strings.HasPrefix(l.Images[i].Path, "realty_images/"))
		assert.Empty(t, l.Images[i].URL)
	}
	assert.Equal(t, "https://x/1.jpg", l.Images[3].URL)
	assert.Equal(t, "https://x/2.jpg", l.Images[4].URL)
	assert.Equal(t, domain.ListingSale, l.Type)
	assert.Nil(t, l.KitchenSqm)
}

func TestListingCreate_Rooms(t *testing.T) {
	gdb := openTestDB(t)
	s := NewListingStore(gdb, media.NewMemoryStore())

	l, err := s.Create(context.Background(), ListingInput{
		Fields: listingFields(),
		Rooms:  upsert.ParseDescriptors(`[{"name":"Master","sqm":20},{"name":"Guest","sqm":"12.5"},{"name":"","sqm":3},{"sqm":4}]`),
	})
	require.NoError(t, err)

	require.Len(t, l.Rooms, 2)
	assert.Equal(t, "Master", l.Rooms[0].Name)
	assert.Equal(t, 20.0, l.Rooms[0].Sqm)
	assert.Equal(t, "Guest", l.Rooms[1].Name)
	assert.Equal(t, 12.5, l.Rooms[1].Sqm)
}

func TestListingCreate_RoomDescriptorsSkipped(t *testing.T) {
	cyrillic := strings.Repeat("Ж", 60)
	cases := []struct {
		name  string
		rooms string
		want  []string
	}{
		{"NaN sqm", `[{"name":"Master","sqm":"NaN"},{"name":"Guest","sqm":12}]`, []string{"Guest"}},
		{"infinite sqm", `[{"name":"Master","sqm":"Inf"},{"name":"Study","sqm":"-Inf"}]`, nil},
		{"negative sqm", `[{"name":"Master","sqm":-5},{"name":"Guest","sqm":"-0.5"},{"name":"Box","sqm":0}]`, []string{"Box"}},
		{"non-ASCII name within limit", `[{"name":"` + cyrillic + `","sqm":14}]`, []string{cyrillic}},
		{"name over 100 characters", `[{"name":"` + strings.Repeat("Ж", 101) + `","sqm":14}]`, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gdb := openTestDB(t)
			s := NewListingStore(gdb, media.NewMemoryStore())

			l, err := s.Create(context.Background(), ListingInput{
				Fields: listingFields(),
				Rooms:  upsert.ParseDescriptors(tc.rooms),
			})
			require.NoError(t, err)
			var names []string
			for _, r := range l.Rooms {
				names = append(names, r.Name)
			}
			assert.Equal(t, tc.want, names)
		})
	}
}

func TestListingCreate_MalformedRoomsIsEmpty(t *testing.T) {
	gdb := openTestDB(t)
	s := NewListingStore(gdb, media.NewMemoryStore())

	l, err := s.Create(context.Background(), ListingInput{
		Fields: listingFields(),
		Rooms:  upsert.ParseDescriptors("{bad json"),
	})
	require.NoError(t, err)
	assert.Empty(t, l.Rooms)
}

func TestListingCreate_Validation(t *testing.T) {
	gdb := openTestDB(t)
	s := NewListingStore(gdb, media.NewMemoryStore())

	fields := listingFields()
	fields["type"] = "rent"
	fields["kitchen_sqm"] = "-2"
	delete(fields, "title")

	_, err := s.Create(context.Background(), ListingInput{Fields: fields, Files: files("a.png")})
	verr, ok := upsert.AsValidationError(err)
	require.True(t, ok)
	assert.Contains(t, verr.Fields, "title")
	assert.Contains(t, verr.Fields, "type")
	assert.Contains(t, verr.Fields, "kitchen_sqm")

	var n int64
	gdb.Model(&domain.Listing{}).Count(&n)
	assert.Zero(t, n)
}

func TestListingUpdate_ChildrenKeptUnlessSupplied(t *testing.T) {
	gdb := openTestDB(t)
	files1 := media.NewMemoryStore()
	s := NewListingStore(gdb, files1)
	ctx := context.Background()

	l, err := s.Create(ctx, ListingInput{
		Fields: listingFields(),
		Files:  files("a.png", "b.png"),
		Rooms:  upsert.ParseDescriptors(`[{"name":"Master","sqm":20}]`),
	})
	require.NoError(t, err)

	// No images and no rooms: children untouched
	patched, err := s.Update(ctx, l.ID, ListingInput{Fields: map[string]string{"price": "₦50,000,000"}}, true)
	require.NoError(t, err)
	assert.Equal(t, "₦50,000,000", patched.Price)
	assert.Equal(t, "Duplex in Lekki", patched.Title)
	assert.Equal(t, l.Images, patched.Images)
	assert.Equal(t, l.Rooms, patched.Rooms)

	// One new upload replaces the image set only
	replaced, err := s.Update(ctx, l.ID, ListingInput{Fields: map[string]string{}, Files: files("c.png")}, true)
	require.NoError(t, err)
	require.Len(t, replaced.Images, 1)
	assert.Equal(t, l.Rooms, replaced.Rooms)
	assert.Equal(t, 1, files1.Len())
}

func TestListingUpdate_FullRequiresFields(t *testing.T) {
	gdb := openTestDB(t)
	s := NewListingStore(gdb, media.NewMemoryStore())
	ctx := context.Background()
	l, err := s.Create(ctx, ListingInput{Fields: listingFields()})
	require.NoError(t, err)

	_, err = s.Update(ctx, l.ID, ListingInput{Fields: map[string]string{"title": "Only"}}, false)
	_, ok := upsert.AsValidationError(err)
	assert.True(t, ok)

	_, err = s.Update(ctx, 999, ListingInput{Fields: listingFields()}, false)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestListingDelete_Cascades(t *testing.T) {
	gdb := openTestDB(t)
	files1 := media.NewMemoryStore()
	s := NewListingStore(gdb, files1)
	ctx := context.Background()

	l, err := s.Create(ctx, ListingInput{
		Fields: listingFields(),
		Files:  files("a.png"),
		Images: upsert.ParseDescriptors(`[{"image":"https://x/1.jpg"}]`),
		Rooms:  upsert.ParseDescriptors(`[{"name":"Master","sqm":20}]`),
	})
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, l.ID))

	var images, rooms int64
	gdb.Model(&domain.ListingImage{}).Count(&images)
	gdb.Model(&domain.Room{}).Count(&rooms)
	assert.Zero(t, images)
	assert.Zero(t, rooms)
	assert.Zero(t, files1.Len())

	_, err = s.Get(ctx, l.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.ErrorIs(t, s.Delete(ctx, l.ID), gorm.ErrRecordNotFound)
}

func TestListingList_FiltersAndPages(t *testing.T) {
	gdb := openTestDB(t)
	s := NewListingStore(gdb, media.NewMemoryStore())
	ctx := context.Background()

	for i, typ := range []string{"sale", "lease", "sale", "sale"} {
		f := listingFields()
		f["type"] = typ
		f["title"] = "Listing " + string(rune('A'+i))
		_, err := s.Create(ctx, ListingInput{Fields: f})
		require.NoError(t, err)
	}

	page, total, err := s.List(ctx, ListingFilter{Type: "sale", Page: 1, PageSize: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, page, 2)
	assert.Equal(t, "Listing D", page[0].Title, "newest first")

	page, _, err = s.List(ctx, ListingFilter{Type: "sale", Page: 2, PageSize: 2})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "Listing A", page[0].Title)
}

func TestListingSearchAndByIDs(t *testing.T) {
	gdb := openTestDB(t)
	s := NewListingStore(gdb, media.NewMemoryStore())
	ctx := context.Background()

	a, err := s.Create(ctx, ListingInput{Fields: listingFields()})
	require.NoError(t, err)
	f := listingFields()
	f["title"] = "Bungalow"
	f["location"] = "Ikeja"
	b, err := s.Create(ctx, ListingInput{Fields: f})
	require.NoError(t, err)

	found, err := s.Search(ctx, "Ikeja", 10)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, b.ID, found[0].ID)

	ordered, err := s.ByIDs(ctx, []uint{b.ID, 42, a.ID})
	require.NoError(t, err)
	require.Len(t, ordered, 2)
	assert.Equal(t, b.ID, ordered[0].ID)
	assert.Equal(t, a.ID, ordered[1].ID)
}
