package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormCollection[T any, P docPtr[T]] struct {
	db *gorm.DB
}

func NewGormCollection[T any, P docPtr[T]](db *gorm.DB) *GormCollection[T, P] {
	return &GormCollection[T, P]{db: db}
}

func (c *GormCollection[T, P]) query(ctx context.Context, filter Predicate) *gorm.DB {
	q := c.db.WithContext(ctx).Model(new(T))
	if expr := ToClause(filter); expr != nil {
		q = q.Where(expr)
	}
	return q
}

func (c *GormCollection[T, P]) Find(ctx context.Context, opts FindOptions) ([]T, error) {
	q := c.query(ctx, opts.Filter)
	for _, s := range opts.Sort {
		q = q.Order(clause.OrderByColumn{Column: column(s.Field), Desc: s.Desc})
	}
	if opts.Skip > 0 {
		q = q.Offset(int(opts.Skip))
	}
	if opts.Limit > 0 {
		q = q.Limit(int(opts.Limit))
	}
	if len(opts.Fields) > 0 {
		columns := []string{"id"}
		for _, f := range opts.Fields {
			columns = append(columns, ColumnName(f))
		}
		q = q.Select(columns)
	}

	out := []T{}
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (c *GormCollection[T, P]) FindOne(ctx context.Context, filter Predicate) (*T, error) {
	var doc T
	err := c.query(ctx, filter).Take(&doc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (c *GormCollection[T, P]) FindByID(ctx context.Context, id string) (*T, error) {
	return c.FindOne(ctx, ByID(id))
}

func (c *GormCollection[T, P]) Count(ctx context.Context, filter Predicate) (int64, error) {
	var n int64
	err := c.query(ctx, filter).Count(&n).Error
	return n, err
}

func (c *GormCollection[T, P]) Insert(ctx context.Context, doc *T) error {
	p := P(doc)
	if p.GetID() == "" {
		p.SetID(uuid.NewString())
	}
	p.Touch(time.Now().UTC())

	err := c.db.WithContext(ctx).Create(doc).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicate
	}
	return err
}

func (c *GormCollection[T, P]) Update(ctx context.Context, doc *T) error {
	p := P(doc)
	p.Touch(time.Now().UTC())

	res := c.db.WithContext(ctx).Model(doc).Select("*").Updates(doc)
	if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
		return ErrDuplicate
	}
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (c *GormCollection[T, P]) Delete(ctx context.Context, id string) error {
	res := c.db.WithContext(ctx).Where(ToClause(ByID(id))).Delete(new(T))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
