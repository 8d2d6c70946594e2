package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kariqs/novastore-api/apperrors"
	"github.com/Kariqs/novastore-api/models"
	"github.com/Kariqs/novastore-api/store"
)

func TestCreateCategoryDerivesSlug(t *testing.T) {
	s, _ := newTestService(t)

	c := createCategory(t, s, "Home & Garden", "")
	assert.Equal(t, "home-garden", c.Slug)
	assert.True(t, c.IsActive)
	assert.True(t, c.IsTopLevel())

	explicit, err := s.Categories.Create(context.Background(), CategoryInput{Name: ptr("TVs"), Slug: ptr("Televisions Sets")})
	require.NoError(t, err)
	assert.Equal(t, "televisions-sets", explicit.Slug)
}

func TestCreateCategoryValidation(t *testing.T) {
	s, _ := newTestService(t)
	createCategory(t, s, "Laptops", "")

	tests := []struct {
		name string
		in   CategoryInput
	}{
		{"missing name", CategoryInput{}},
		{"blank name", CategoryInput{Name: ptr("   ")}},
		{"duplicate slug", CategoryInput{Name: ptr("laptops!")}},
		{"unknown parent", CategoryInput{Name: ptr("Phones"), ParentID: ptr("nope")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Categories.Create(context.Background(), tt.in)
			assert.True(t, apperrors.Is(err, apperrors.KindValidation), "got %v", err)
		})
	}
}

func TestUpdateCategoryRederivesSlugOnRename(t *testing.T) {
	s, _ := newTestService(t)
	c := createCategory(t, s, "Laptops", "")

	renamed, err := s.Categories.Update(context.Background(), c.ID, CategoryInput{Name: ptr("Notebooks")})
	require.NoError(t, err)
	assert.Equal(t, "notebooks", renamed.Slug)

	kept, err := s.Categories.Update(context.Background(), c.ID, CategoryInput{Order: ptr(3)})
	require.NoError(t, err)
	assert.Equal(t, "notebooks", kept.Slug)
	assert.Equal(t, 3, kept.Order)

	_, err = s.Categories.Update(context.Background(), c.ID, CategoryInput{ParentID: ptr(c.ID)})
	assert.True(t, apperrors.Is(err, apperrors.KindValidation))

	_, err = s.Categories.Update(context.Background(), "missing", CategoryInput{Order: ptr(1)})
	assert.True(t, apperrors.Is(err, apperrors.KindNotFound))
}

func TestUpdateCategoryParentAlias(t *testing.T) {
	s, _ := newTestService(t)
	parent := createCategory(t, s, "Laptops", "")
	child := createCategory(t, s, "Ultrabooks", "")

	moved, err := s.Categories.Update(context.Background(), child.ID, CategoryInput{Parent: ptr(parent.ID)})
	require.NoError(t, err)
	require.NotNil(t, moved.ParentID)
	assert.Equal(t, parent.ID, *moved.ParentID)

	detached, err := s.Categories.Update(context.Background(), child.ID, CategoryInput{ParentID: ptr("")})
	require.NoError(t, err)
	assert.True(t, detached.IsTopLevel())
}

func TestResolveBySlug(t *testing.T) {
	s, _ := newTestService(t)
	createCategory(t, s, "Laptops", "")

	c, err := s.Categories.ResolveBySlug(context.Background(), " Laptops ")
	require.NoError(t, err)
	assert.Equal(t, "Laptops", c.Name)

	_, err = s.Categories.ResolveBySlug(context.Background(), "phones")
	assert.True(t, apperrors.Is(err, apperrors.KindNotFound))
}

func TestListChildrenOrdering(t *testing.T) {
	s, _ := newTestService(t)
	parent := createCategory(t, s, "Laptops", "")
	_, err := s.Categories.Create(context.Background(), CategoryInput{Name: ptr("B"), ParentID: ptr(parent.ID), Order: ptr(2)})
	require.NoError(t, err)
	_, err = s.Categories.Create(context.Background(), CategoryInput{Name: ptr("A"), ParentID: ptr(parent.ID), Order: ptr(1)})
	require.NoError(t, err)
	_, err = s.Categories.Create(context.Background(), CategoryInput{Name: ptr("C"), ParentID: ptr(parent.ID), Order: ptr(2)})
	require.NoError(t, err)

	children, err := s.Categories.ListChildren(context.Background(), parent.ID)
	require.NoError(t, err)

	var got []string
	for _, c := range children {
		got = append(got, c.Name)
	}
	assert.Equal(t, []string{"A", "B", "C"}, got)
}

func TestListTopLevelWithChildren(t *testing.T) {
	s, _ := newTestService(t)
	seedLaptops(t, s)

	menu, err := s.Categories.ListTopLevelWithChildren(context.Background())
	require.NoError(t, err)
	require.Len(t, menu, 2)

	assert.Equal(t, "Laptops", menu[0].Name)
	require.Len(t, menu[0].Subcategories, 2)
	assert.Equal(t, "Gaming Laptops", menu[0].Subcategories[0].Name)
	assert.Equal(t, "Ultrabooks", menu[0].Subcategories[1].Name)

	assert.Equal(t, "Phones", menu[1].Name)
	assert.NotNil(t, menu[1].Subcategories)
	assert.Empty(t, menu[1].Subcategories)
}

func TestListAllResolvesParent(t *testing.T) {
	s, _ := newTestService(t)
	seedLaptops(t, s)

	entries, err := s.Categories.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 4)

	for _, e := range entries {
		switch e.Name {
		case "Gaming Laptops", "Ultrabooks":
			require.NotNil(t, e.Parent)
			assert.Equal(t, "laptops", e.Parent.Slug)
		default:
			assert.Nil(t, e.Parent)
		}
	}
}

func TestDeleteCategoryPromotesChildren(t *testing.T) {
	s, _ := newTestService(t)
	seedLaptops(t, s)
	laptops, err := s.Categories.ResolveBySlug(context.Background(), "laptops")
	require.NoError(t, err)

	require.NoError(t, s.Categories.Delete(context.Background(), laptops.ID))

	menu, err := s.Categories.ListTopLevelWithChildren(context.Background())
	require.NoError(t, err)
	var top []string
	for _, m := range menu {
		top = append(top, m.Name)
	}
	assert.ElementsMatch(t, []string{"Gaming Laptops", "Ultrabooks", "Phones"}, top)

	assert.True(t, apperrors.Is(s.Categories.Delete(context.Background(), laptops.ID), apperrors.KindNotFound))
}

func TestChildWithDanglingParentMatchesByChildName(t *testing.T) {
	s, stores := newTestService(t)
	laptops := createCategory(t, s, "Laptops", "")
	createCategory(t, s, "Ultrabooks", laptops.ID)
	// remove the parent behind the tree's back to leave a dangling reference
	require.NoError(t, stores.Categories.Delete(context.Background(), laptops.ID))

	createProduct(t, s, models.Product{Name: "U", CategoryParent: "Laptops", CategoryChild: "Ultrabooks"})
	createProduct(t, s, models.Product{Name: "X", CategoryParent: "Phones"})

	result, err := s.ListProducts(context.Background(), ListRequest{Filter: Filter{CategorySlug: "ultrabooks"}, Limit: DefaultLimit})
	require.NoError(t, err)
	assert.Equal(t, []string{"U"}, names(result.Items))
}

func TestUpdateCategoryRejectsCycles(t *testing.T) {
	s, _ := newTestService(t)
	laptops := createCategory(t, s, "Laptops", "")
	gaming := createCategory(t, s, "Gaming Laptops", laptops.ID)
	rgb := createCategory(t, s, "RGB", gaming.ID)

	_, err := s.Categories.Update(context.Background(), laptops.ID, CategoryInput{ParentID: ptr(gaming.ID)})
	assert.True(t, apperrors.Is(err, apperrors.KindValidation), "got %v", err)

	_, err = s.Categories.Update(context.Background(), laptops.ID, CategoryInput{ParentID: ptr(rgb.ID)})
	assert.True(t, apperrors.Is(err, apperrors.KindValidation), "got %v", err)

	menu, err := s.Categories.ListTopLevelWithChildren(context.Background())
	require.NoError(t, err)
	require.Len(t, menu, 1)
	assert.Equal(t, "Laptops", menu[0].Name)

	phones := createCategory(t, s, "Phones", "")
	moved, err := s.Categories.Update(context.Background(), phones.ID, CategoryInput{ParentID: ptr(rgb.ID)})
	require.NoError(t, err)
	assert.Equal(t, rgb.ID, *moved.ParentID)
}

// slugRace stands in for a unique slug index rejecting a concurrent write.
type slugRace struct {
	store.Collection[models.Category]
}

func (slugRace) Insert(context.Context, *models.Category) error {
	return store.ErrDuplicate
}

func (slugRace) Update(context.Context, *models.Category) error {
	return store.ErrDuplicate
}

func TestDuplicateSlugFromStoreIsValidation(t *testing.T) {
	memory := store.NewMemoryCollection[models.Category]()
	existing := &models.Category{Name: "Laptops", Slug: "laptops"}
	require.NoError(t, memory.Insert(context.Background(), existing))

	tree := NewCategoryTree(slugRace{memory}, nil, time.Minute)

	_, err := tree.Create(context.Background(), CategoryInput{Name: ptr("Phones")})
	assert.True(t, apperrors.Is(err, apperrors.KindValidation), "got %v", err)

	_, err = tree.Update(context.Background(), existing.ID, CategoryInput{Name: ptr("Notebooks")})
	assert.True(t, apperrors.Is(err, apperrors.KindValidation), "got %v", err)
}
