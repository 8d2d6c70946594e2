package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"gorm.io/gorm/clause"
)

func TestToBSON(t *testing.T) {
	tests := []struct {
		name string
		p    Predicate
		want bson.M
	}{
		{"nil", nil, bson.M{}},
		{"eq", Eq{Field: "brand", Value: "Acme"}, bson.M{"brand": "Acme"}},
		{"in", In{Field: "categoryChild", Values: []any{"a", "b"}}, bson.M{"categoryChild": bson.M{"$in": []any{"a", "b"}}}},
		{"range", Range{Field: "price", Gte: Float(100), Lte: Float(200)}, bson.M{"price": bson.M{"$gte": 100.0, "$lte": 200.0}}},
		{"open range", Range{Field: "price"}, bson.M{}},
		{"empty and", And{}, bson.M{}},
		{"single and", And{Eq{Field: "featured", Value: true}}, bson.M{"featured": true}},
		{"empty or", Or{}, bson.M{"_id": bson.M{"$exists": false}}},
		{"nothing", Nothing{}, bson.M{"_id": bson.M{"$exists": false}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToBSON(tt.p))
		})
	}
}

func TestToBSONNested(t *testing.T) {
	p := And{
		Or{Eq{Field: "categoryParent", Value: "Electronics"}, In{Field: "categoryChild", Values: []any{"Laptops"}}},
		Eq{Field: "brand", Value: "Acme"},
	}

	got := ToBSON(p)

	parts, ok := got["$and"].([]bson.M)
	if assert.True(t, ok) && assert.Len(t, parts, 2) {
		assert.Contains(t, parts[0], "$or")
		assert.Equal(t, bson.M{"brand": "Acme"}, parts[1])
	}
}

func TestMatch(t *testing.T) {
	doc := bson.M{
		"_id":            "p1",
		"categoryParent": "Electronics",
		"categoryChild":  "Laptops",
		"price":          int32(150),
		"featured":       true,
		"parentId":       nil,
		"customerInfo":   bson.M{"email": "a@b.c"},
	}

	tests := []struct {
		name string
		p    Predicate
		want bool
	}{
		{"all", All(), true},
		{"eq", Eq{Field: "categoryParent", Value: "Electronics"}, true},
		{"eq mismatch", Eq{Field: "categoryParent", Value: "Books"}, false},
		{"eq numeric across types", Eq{Field: "price", Value: 150.0}, true},
		{"eq null", Eq{Field: "parentId", Value: nil}, true},
		{"eq missing as null", Eq{Field: "brand", Value: nil}, true},
		{"in", In{Field: "categoryChild", Values: []any{"Phones", "Laptops"}}, true},
		{"in missing field", In{Field: "brand", Values: []any{"Acme"}}, false},
		{"range inclusive low", Range{Field: "price", Gte: Float(150)}, true},
		{"range inclusive high", Range{Field: "price", Lte: Float(150)}, true},
		{"range outside", Range{Field: "price", Gte: Float(151)}, false},
		{"dotted path", Eq{Field: "customerInfo.email", Value: "a@b.c"}, true},
		{"or", Or{Eq{Field: "brand", Value: "x"}, Eq{Field: "featured", Value: true}}, true},
		{"empty or", Or{}, false},
		{"and short circuits", And{Eq{Field: "featured", Value: true}, Nothing{}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Match(tt.p, doc))
		})
	}
}

func TestColumnName(t *testing.T) {
	assert.Equal(t, "id", ColumnName("_id"))
	assert.Equal(t, "category_parent", ColumnName("categoryParent"))
	assert.Equal(t, "created_at", ColumnName("createdAt"))
	assert.Equal(t, "price", ColumnName("price"))
}

func TestToClause(t *testing.T) {
	assert.Nil(t, ToClause(nil))
	assert.Nil(t, ToClause(All()))
	assert.Equal(t, nothingClause, ToClause(Nothing{}))
	assert.Equal(t, nothingClause, ToClause(Or{}))
	assert.Equal(t, nothingClause, ToClause(In{Field: "brand"}))

	assert.Equal(t,
		clause.Eq{Column: clause.Column{Name: "category_parent"}, Value: "Electronics"},
		ToClause(Eq{Field: "categoryParent", Value: "Electronics"}),
	)

	assert.Equal(t,
		clause.Gte{Column: clause.Column{Name: "price"}, Value: 100.0},
		ToClause(Range{Field: "price", Gte: Float(100)}),
	)

	// an Or with an always-true branch is always true
	assert.Nil(t, ToClause(Or{All(), Eq{Field: "brand", Value: "x"}}))

	_, isOr := ToClause(Or{Eq{Field: "a", Value: 1}, Eq{Field: "b", Value: 2}}).(clause.OrConditions)
	assert.True(t, isOr)
	_, isAnd := ToClause(And{Eq{Field: "a", Value: 1}, Eq{Field: "b", Value: 2}}).(clause.AndConditions)
	assert.True(t, isAnd)
}
