package store

import (
	"reflect"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ToBSON renders p as a MongoDB query document.
func ToBSON(p Predicate) bson.M {
	switch v := p.(type) {
	case nil:
		return bson.M{}
	case Eq:
		return bson.M{v.Field: v.Value}
	case In:
		return bson.M{v.Field: bson.M{"$in": v.Values}}
	case Range:
		bounds := bson.M{}
		if v.Gte != nil {
			bounds["$gte"] = *v.Gte
		}
		if v.Lte != nil {
			bounds["$lte"] = *v.Lte
		}
		if len(bounds) == 0 {
			return bson.M{}
		}
		return bson.M{v.Field: bounds}
	case And:
		if len(v) == 0 {
			return bson.M{}
		}
		if len(v) == 1 {
			return ToBSON(v[0])
		}
		parts := make([]bson.M, 0, len(v))
		for _, sub := range v {
			parts = append(parts, ToBSON(sub))
		}
		return bson.M{"$and": parts}
	case Or:
		if len(v) == 0 {
			return ToBSON(Nothing{})
		}
		parts := make([]bson.M, 0, len(v))
		for _, sub := range v {
			parts = append(parts, ToBSON(sub))
		}
		return bson.M{"$or": parts}
	case Nothing:
		return bson.M{"_id": bson.M{"$exists": false}}
	}
	return bson.M{}
}

// Match evaluates p against a decoded document the way MongoDB would for the
// operators the predicate language supports.
func Match(p Predicate, doc bson.M) bool {
	switch v := p.(type) {
	case nil:
		return true
	case Eq:
		val, ok := lookup(doc, v.Field)
		if v.Value == nil {
			return !ok || val == nil
		}
		return ok && equal(val, v.Value)
	case In:
		val, ok := lookup(doc, v.Field)
		if !ok {
			return false
		}
		for _, candidate := range v.Values {
			if equal(val, candidate) {
				return true
			}
		}
		return false
	case Range:
		val, ok := lookup(doc, v.Field)
		if !ok {
			return false
		}
		f, ok := toFloat(val)
		if !ok {
			return false
		}
		if v.Gte != nil && f < *v.Gte {
			return false
		}
		if v.Lte != nil && f > *v.Lte {
			return false
		}
		return true
	case And:
		for _, sub := range v {
			if !Match(sub, doc) {
				return false
			}
		}
		return true
	case Or:
		for _, sub := range v {
			if Match(sub, doc) {
				return true
			}
		}
		return false
	case Nothing:
		return false
	}
	return false
}

// lookup resolves a dotted path inside doc.
func lookup(doc bson.M, path string) (any, bool) {
	var current any = doc
	for _, key := range strings.Split(path, ".") {
		switch node := current.(type) {
		case bson.M:
			val, ok := node[key]
			if !ok {
				return nil, false
			}
			current = val
		case map[string]any:
			val, ok := node[key]
			if !ok {
				return nil, false
			}
			current = val
		case bson.D:
			found := false
			for _, e := range node {
				if e.Key == key {
					current, found = e.Value, true
					break
				}
			}
			if !found {
				return nil, false
			}
		default:
			return nil, false
		}
	}
	return current, true
}

func equal(a, b any) bool {
	if fa, ok := toFloat(a); ok {
		if fb, ok := toFloat(b); ok {
			return fa == fb
		}
	}
	return reflect.DeepEqual(a, b)
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

// compare orders two decoded bson values. Missing and null sort first.
func compare(a, b any) int {
	if a == nil || b == nil {
		switch {
		case a == nil && b == nil:
			return 0
		case a == nil:
			return -1
		default:
			return 1
		}
	}

	if fa, ok := toFloat(a); ok {
		if fb, ok := toFloat(b); ok {
			return cmpOrdered(fa, fb)
		}
	}

	switch x := a.(type) {
	case string:
		if y, ok := b.(string); ok {
			return strings.Compare(x, y)
		}
	case primitive.DateTime:
		if y, ok := b.(primitive.DateTime); ok {
			return cmpOrdered(int64(x), int64(y))
		}
	case time.Time:
		if y, ok := b.(time.Time); ok {
			return x.Compare(y)
		}
	case bool:
		if y, ok := b.(bool); ok {
			switch {
			case x == y:
				return 0
			case !x:
				return -1
			default:
				return 1
			}
		}
	}
	return 0
}

func cmpOrdered[T int64 | float64](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
