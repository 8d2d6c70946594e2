package catalog

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/Kariqs/novastore-api/apperrors"
	"github.com/Kariqs/novastore-api/cache"
	"github.com/Kariqs/novastore-api/models"
	"github.com/Kariqs/novastore-api/store"
)

const menuCacheKey = "categories:menu"

var categoryOrder = []store.SortField{{Field: "order"}, {Field: "createdAt"}}

// CategoryTree reads and writes the two-level category taxonomy.
type CategoryTree struct {
	categories store.Collection[models.Category]
	cache      *cache.Cache
	ttl        time.Duration
}

func NewCategoryTree(categories store.Collection[models.Category], c *cache.Cache, ttl time.Duration) *CategoryTree {
	return &CategoryTree{categories: categories, cache: c, ttl: ttl}
}

// CategoryInput is a partial category write. Nil fields are left untouched.
// Parent is accepted as an alias of ParentID; an empty id clears the parent.
type CategoryInput struct {
	Name        *string `json:"name"`
	Slug        *string `json:"slug"`
	Description *string `json:"description"`
	ParentID    *string `json:"parentId"`
	Parent      *string `json:"parent"`
	Order       *int    `json:"order"`
	IsActive    *bool   `json:"isActive"`
	Image       *string `json:"image"`
	IconID      *string `json:"iconId"`
	IconURL     *string `json:"iconUrl"`
}

func (in CategoryInput) parent() *string {
	if in.ParentID != nil {
		return in.ParentID
	}
	return in.Parent
}

type ParentRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// CategoryEntry is a category with its parent's name and slug resolved.
type CategoryEntry struct {
	models.Category
	Parent *ParentRef `json:"parent"`
}

func (t *CategoryTree) ResolveBySlug(ctx context.Context, slug string) (*models.Category, error) {
	const op = "catalog.ResolveBySlug"

	normalized := strings.ToLower(strings.TrimSpace(slug))
	if normalized == "" {
		return nil, apperrors.NotFound(op, "Category")
	}

	category, err := t.categories.FindOne(ctx, store.Eq{Field: "slug", Value: normalized})
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperrors.NotFound(op, "Category")
	}
	if err != nil {
		return nil, apperrors.Persistence(op, err)
	}
	return category, nil
}

func (t *CategoryTree) Get(ctx context.Context, id string) (*models.Category, error) {
	category, err := t.categories.FindByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperrors.NotFound("catalog.GetCategory", "Category")
	}
	if err != nil {
		return nil, apperrors.Persistence("catalog.GetCategory", err)
	}
	return category, nil
}

// GetWithChildren returns a category and its direct children.
func (t *CategoryTree) GetWithChildren(ctx context.Context, id string) (*models.CategoryWithChildren, error) {
	category, err := t.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	children, err := t.ListChildren(ctx, id)
	if err != nil {
		return nil, err
	}
	return &models.CategoryWithChildren{Category: *category, Subcategories: children}, nil
}

// ListChildren returns the direct children of a category ordered by weight,
// then creation time.
func (t *CategoryTree) ListChildren(ctx context.Context, categoryID string) ([]models.Category, error) {
	children, err := t.categories.Find(ctx, store.FindOptions{
		Filter: store.Eq{Field: "parentId", Value: categoryID},
		Sort:   categoryOrder,
	})
	if err != nil {
		return nil, apperrors.Persistence("catalog.ListChildren", err)
	}
	return children, nil
}

// Parent returns the parent of a child category, or NotFound when the
// reference dangles.
func (t *CategoryTree) Parent(ctx context.Context, category *models.Category) (*models.Category, error) {
	if category.IsTopLevel() {
		return nil, apperrors.NotFound("catalog.Parent", "Parent category")
	}
	return t.Get(ctx, *category.ParentID)
}

// ListTopLevelWithChildren builds the menu from a single fetch of every
// category. Orphans whose parent no longer exists are left out.
func (t *CategoryTree) ListTopLevelWithChildren(ctx context.Context) ([]models.CategoryWithChildren, error) {
	var menu []models.CategoryWithChildren
	if t.cache.Get(ctx, menuCacheKey, &menu) {
		return menu, nil
	}

	all, err := t.categories.Find(ctx, store.FindOptions{Sort: categoryOrder})
	if err != nil {
		return nil, apperrors.Persistence("catalog.ListTopLevelWithChildren", err)
	}

	var top []models.Category
	children := make(map[string][]models.Category)
	for _, c := range all {
		if c.IsTopLevel() {
			top = append(top, c)
			continue
		}
		children[*c.ParentID] = append(children[*c.ParentID], c)
	}

	menu = make([]models.CategoryWithChildren, 0, len(top))
	for _, parent := range top {
		subs := children[parent.ID]
		if subs == nil {
			subs = []models.Category{}
		}
		menu = append(menu, models.CategoryWithChildren{Category: parent, Subcategories: subs})
	}

	if err := t.cache.Set(ctx, menuCacheKey, menu, t.ttl); err != nil {
		slog.WarnContext(ctx, "failed to cache category menu", "error", err)
	}
	return menu, nil
}

// ListAll returns every category in weight order with its parent resolved.
func (t *CategoryTree) ListAll(ctx context.Context) ([]CategoryEntry, error) {
	all, err := t.categories.Find(ctx, store.FindOptions{Sort: categoryOrder})
	if err != nil {
		return nil, apperrors.Persistence("catalog.ListAll", err)
	}

	byID := make(map[string]models.Category, len(all))
	for _, c := range all {
		byID[c.ID] = c
	}

	entries := make([]CategoryEntry, 0, len(all))
	for _, c := range all {
		entry := CategoryEntry{Category: c}
		if !c.IsTopLevel() {
			if p, ok := byID[*c.ParentID]; ok {
				entry.Parent = &ParentRef{ID: p.ID, Name: p.Name, Slug: p.Slug}
			}
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (t *CategoryTree) Create(ctx context.Context, in CategoryInput) (*models.Category, error) {
	const op = "catalog.CreateCategory"

	category := &models.Category{IsActive: true}
	if in.Slug == nil {
		// a new category always derives its slug from the name
		in.Slug = in.Name
	}
	if err := t.apply(ctx, op, category, in); err != nil {
		return nil, err
	}

	err := t.categories.Insert(ctx, category)
	if errors.Is(err, store.ErrDuplicate) {
		return nil, apperrors.Validation(op, "Slug is already in use")
	}
	if err != nil {
		return nil, apperrors.Persistence(op, err)
	}
	t.invalidate(ctx)
	return category, nil
}

func (t *CategoryTree) Update(ctx context.Context, id string, in CategoryInput) (*models.Category, error) {
	const op = "catalog.UpdateCategory"

	category, err := t.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Slug == nil && in.Name != nil && strings.TrimSpace(*in.Name) != category.Name {
		in.Slug = in.Name
	}
	if err := t.apply(ctx, op, category, in); err != nil {
		return nil, err
	}

	err = t.categories.Update(ctx, category)
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperrors.NotFound(op, "Category")
	}
	if errors.Is(err, store.ErrDuplicate) {
		return nil, apperrors.Validation(op, "Slug is already in use")
	}
	if err != nil {
		return nil, apperrors.Persistence(op, err)
	}
	t.invalidate(ctx)
	return category, nil
}

// Delete removes a category and promotes its children to top level so no
// parent reference is left dangling.
func (t *CategoryTree) Delete(ctx context.Context, id string) error {
	const op = "catalog.DeleteCategory"

	children, err := t.ListChildren(ctx, id)
	if err != nil {
		return err
	}

	err = t.categories.Delete(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return apperrors.NotFound(op, "Category")
	}
	if err != nil {
		return apperrors.Persistence(op, err)
	}

	for i := range children {
		children[i].ParentID = nil
		if err := t.categories.Update(ctx, &children[i]); err != nil {
			slog.ErrorContext(ctx, "failed to detach child category", "category_id", children[i].ID, "error", err)
		}
	}
	t.invalidate(ctx)
	return nil
}

func (t *CategoryTree) apply(ctx context.Context, op string, category *models.Category, in CategoryInput) error {
	if in.Name != nil {
		category.Name = strings.TrimSpace(*in.Name)
	}
	if category.Name == "" {
		return apperrors.Validation(op, "Name is required")
	}

	if in.Slug != nil {
		slug := models.Slugify(*in.Slug)
		if slug == "" {
			slug = models.Slugify(category.Name)
		}
		if slug == "" {
			return apperrors.Validation(op, "Name must contain letters or digits")
		}
		existing, err := t.categories.FindOne(ctx, store.Eq{Field: "slug", Value: slug})
		switch {
		case err == nil && existing.ID != category.ID:
			return apperrors.Validation(op, "Slug is already in use")
		case err != nil && !errors.Is(err, store.ErrNotFound):
			return apperrors.Persistence(op, err)
		}
		category.Slug = slug
	}

	if parentID := in.parent(); parentID != nil {
		id := strings.TrimSpace(*parentID)
		switch {
		case id == "":
			category.ParentID = nil
		case id == category.ID:
			return apperrors.Validation(op, "A category cannot be its own parent")
		default:
			if err := t.checkParent(ctx, op, category.ID, id); err != nil {
				return err
			}
			category.ParentID = &id
		}
	}

	if in.Description != nil {
		category.Description = *in.Description
	}
	if in.Order != nil {
		category.Order = *in.Order
	}
	if in.IsActive != nil {
		category.IsActive = *in.IsActive
	}
	if in.Image != nil {
		category.Image = *in.Image
	}
	if in.IconID != nil {
		category.IconID = *in.IconID
	}
	if in.IconURL != nil {
		category.IconURL = *in.IconURL
	}
	return nil
}

// checkParent rejects a parent that is missing or that has categoryID among
// its ancestors. A new category has no id and cannot close a cycle.
func (t *CategoryTree) checkParent(ctx context.Context, op, categoryID, parentID string) error {
	seen := map[string]bool{}
	for cur := parentID; cur != "" && !seen[cur]; {
		seen[cur] = true
		ancestor, err := t.Get(ctx, cur)
		if apperrors.Is(err, apperrors.KindNotFound) {
			if cur == parentID {
				return apperrors.Validation(op, "Parent category not found")
			}
			return nil
		}
		if err != nil {
			return err
		}
		if categoryID != "" && ancestor.ID == categoryID {
			return apperrors.Validation(op, "A category cannot be moved under its own descendant")
		}
		if ancestor.IsTopLevel() {
			return nil
		}
		cur = *ancestor.ParentID
	}
	return nil
}

func (t *CategoryTree) invalidate(ctx context.Context) {
	if err := t.cache.Forget(ctx, menuCacheKey); err != nil {
		slog.WarnContext(ctx, "failed to invalidate category menu", "error", err)
	}
}
