package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoCollection[T any, P docPtr[T]] struct {
	coll *mongo.Collection
}

func NewMongoCollection[T any, P docPtr[T]](db *mongo.Database, name string) *MongoCollection[T, P] {
	return &MongoCollection[T, P]{coll: db.Collection(name)}
}

func (c *MongoCollection[T, P]) Find(ctx context.Context, opts FindOptions) ([]T, error) {
	findOpts := options.Find()
	if len(opts.Sort) > 0 {
		sortDoc := bson.D{}
		for _, s := range opts.Sort {
			dir := 1
			if s.Desc {
				dir = -1
			}
			sortDoc = append(sortDoc, bson.E{Key: s.Field, Value: dir})
		}
		findOpts.SetSort(sortDoc)
	}
	if opts.Skip > 0 {
		findOpts.SetSkip(opts.Skip)
	}
	if opts.Limit > 0 {
		findOpts.SetLimit(opts.Limit)
	}
	if len(opts.Fields) > 0 {
		projection := bson.D{}
		for _, f := range opts.Fields {
			projection = append(projection, bson.E{Key: f, Value: 1})
		}
		findOpts.SetProjection(projection)
	}

	cur, err := c.coll.Find(ctx, ToBSON(opts.Filter), findOpts)
	if err != nil {
		return nil, err
	}
	var out []T
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

func (c *MongoCollection[T, P]) FindOne(ctx context.Context, filter Predicate) (*T, error) {
	var doc T
	err := c.coll.FindOne(ctx, ToBSON(filter)).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (c *MongoCollection[T, P]) FindByID(ctx context.Context, id string) (*T, error) {
	return c.FindOne(ctx, ByID(id))
}

func (c *MongoCollection[T, P]) Count(ctx context.Context, filter Predicate) (int64, error) {
	return c.coll.CountDocuments(ctx, ToBSON(filter))
}

func (c *MongoCollection[T, P]) Insert(ctx context.Context, doc *T) error {
	p := P(doc)
	if p.GetID() == "" {
		p.SetID(primitive.NewObjectID().Hex())
	}
	p.Touch(time.Now().UTC())

	_, err := c.coll.InsertOne(ctx, doc)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	return err
}

func (c *MongoCollection[T, P]) Update(ctx context.Context, doc *T) error {
	p := P(doc)
	p.Touch(time.Now().UTC())

	res, err := c.coll.ReplaceOne(ctx, bson.M{"_id": p.GetID()}, doc)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (c *MongoCollection[T, P]) Delete(ctx context.Context, id string) error {
	res, err := c.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
