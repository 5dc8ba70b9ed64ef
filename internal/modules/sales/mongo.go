package sales

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type mongoRepo struct{ coll *mongo.Collection }

func NewMongoRepository(coll *mongo.Collection) Repository { return &mongoRepo{coll: coll} }

func (r *mongoRepo) List(ctx context.Context) ([]*Order, error) {
	cur, err := r.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	orders := []*Order{}
	if err := cur.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}
