package catalog

import (
	"context"
	"net/url"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/Kariqs/novastore-api/apperrors"
	"github.com/Kariqs/novastore-api/store"
)

// Filter is a catalog listing request before category resolution.
type Filter struct {
	CategorySlug string
	Brand        string
	MinPrice     *float64
	MaxPrice     *float64
	Featured     *bool
	DiscountMin  *float64
}

// FilterCompiler turns a Filter into a product predicate.
type FilterCompiler struct {
	tree *CategoryTree
}

func NewFilterCompiler(tree *CategoryTree) *FilterCompiler {
	return &FilterCompiler{tree: tree}
}

// Compile resolves the category slug and ANDs the remaining conditions onto
// it. An unknown slug compiles to a predicate that matches nothing.
func (c *FilterCompiler) Compile(ctx context.Context, f Filter) (store.Predicate, error) {
	conds := store.And{}

	if f.CategorySlug != "" {
		p, err := c.categoryPredicate(ctx, f.CategorySlug)
		if err != nil {
			return nil, err
		}
		conds = append(conds, p)
	}

	if f.Brand != "" {
		conds = append(conds, store.Eq{Field: "brand", Value: f.Brand})
	}
	if f.MinPrice != nil || f.MaxPrice != nil {
		conds = append(conds, store.Range{Field: "price", Gte: f.MinPrice, Lte: f.MaxPrice})
	}
	if f.Featured != nil {
		conds = append(conds, store.Eq{Field: "featured", Value: *f.Featured})
	}
	if f.DiscountMin != nil {
		conds = append(conds, store.Range{Field: "discount", Gte: f.DiscountMin})
	}
	return conds, nil
}

func (c *FilterCompiler) categoryPredicate(ctx context.Context, slug string) (store.Predicate, error) {
	category, err := c.tree.ResolveBySlug(ctx, slug)
	if apperrors.Is(err, apperrors.KindNotFound) {
		return store.Nothing{}, nil
	}
	if err != nil {
		return nil, err
	}

	children, err := c.tree.ListChildren(ctx, category.ID)
	if err != nil {
		return nil, err
	}

	// products may be tagged at the parent level or under any child
	if len(children) > 0 {
		names := []string{category.Name}
		for _, child := range children {
			names = append(names, child.Name)
		}
		return store.Or{
			store.Eq{Field: "categoryParent", Value: category.Name},
			store.In{Field: "categoryChild", Values: store.Strings(names)},
		}, nil
	}

	if !category.IsTopLevel() {
		parent, err := c.tree.Parent(ctx, category)
		if apperrors.Is(err, apperrors.KindNotFound) {
			return store.Eq{Field: "categoryChild", Value: category.Name}, nil
		}
		if err != nil {
			return nil, err
		}
		return store.And{
			store.Eq{Field: "categoryParent", Value: parent.Name},
			store.Eq{Field: "categoryChild", Value: category.Name},
		}, nil
	}

	return store.Eq{Field: "categoryParent", Value: category.Name}, nil
}

// LegacySlugVariants guesses the category strings an old-style slug may have
// been built from: dash-separated words re-joined with a space, " > " or
// nothing, plus title-cased forms.
func LegacySlugVariants(slug string) []string {
	decoded, err := url.PathUnescape(slug)
	if err != nil {
		decoded = slug
	}

	var parts, titled []string
	for _, part := range strings.Split(decoded, "-") {
		if part = strings.TrimSpace(part); part != "" {
			parts = append(parts, part)
			titled = append(titled, capitalize(part))
		}
	}
	if len(parts) == 0 {
		return nil
	}

	candidates := []string{
		strings.Join(parts, " "),
		strings.Join(parts, " > "),
		strings.Join(parts, ""),
		strings.Join(titled, " "),
		strings.Join(titled, " > "),
	}

	seen := make(map[string]bool, len(candidates))
	variants := make([]string, 0, len(candidates))
	for _, v := range candidates {
		if !seen[v] {
			seen[v] = true
			variants = append(variants, v)
		}
	}
	return variants
}

// LegacySlugPredicate matches products whose parent, child or legacy category
// string equals any variant of slug.
func LegacySlugPredicate(slug string) store.Predicate {
	variants := store.Strings(LegacySlugVariants(slug))
	if len(variants) == 0 {
		return store.Nothing{}
	}
	return store.Or{
		store.In{Field: "categoryParent", Values: variants},
		store.In{Field: "categoryChild", Values: variants},
		store.In{Field: "category", Values: variants},
	}
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
