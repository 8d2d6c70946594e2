package store

import (
	"strings"

	"gorm.io/gorm/clause"
	"gorm.io/gorm/schema"
)

var naming = schema.NamingStrategy{}

// ColumnName maps a bson field name to the column GORM generates for it.
// Dotted paths into embedded structs use the embedded prefix convention.
func ColumnName(field string) string {
	if field == "_id" {
		return "id"
	}
	parts := strings.Split(field, ".")
	for i, part := range parts {
		parts[i] = naming.ColumnName("", part)
	}
	return strings.Join(parts, "_")
}

func column(field string) clause.Column {
	return clause.Column{Name: ColumnName(field)}
}

// ToClause renders p as a GORM expression. A nil result means no filter.
func ToClause(p Predicate) clause.Expression {
	switch v := p.(type) {
	case nil:
		return nil
	case Eq:
		return clause.Eq{Column: column(v.Field), Value: v.Value}
	case In:
		if len(v.Values) == 0 {
			return nothingClause
		}
		return clause.IN{Column: column(v.Field), Values: v.Values}
	case Range:
		var exprs []clause.Expression
		if v.Gte != nil {
			exprs = append(exprs, clause.Gte{Column: column(v.Field), Value: *v.Gte})
		}
		if v.Lte != nil {
			exprs = append(exprs, clause.Lte{Column: column(v.Field), Value: *v.Lte})
		}
		return combineAnd(exprs)
	case And:
		var exprs []clause.Expression
		for _, sub := range v {
			if expr := ToClause(sub); expr != nil {
				exprs = append(exprs, expr)
			}
		}
		return combineAnd(exprs)
	case Or:
		var exprs []clause.Expression
		for _, sub := range v {
			expr := ToClause(sub)
			if expr == nil {
				// an empty branch matches everything
				return nil
			}
			exprs = append(exprs, expr)
		}
		if len(exprs) == 0 {
			return nothingClause
		}
		return clause.Or(exprs...)
	case Nothing:
		return nothingClause
	}
	return nil
}

var nothingClause = clause.Expr{SQL: "1 = 0"}

func combineAnd(exprs []clause.Expression) clause.Expression {
	switch len(exprs) {
	case 0:
		return nil
	case 1:
		return exprs[0]
	}
	return clause.And(exprs...)
}
