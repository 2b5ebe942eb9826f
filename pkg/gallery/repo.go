package gallery

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"uigallery/pkg/apperr"
)

type MongoRepo struct {
	collection *mongo.Collection
}

func NewMongoRepo(db *mongo.Database) *MongoRepo {
	return &MongoRepo{
		collection: db.Collection("items"),
	}
}

func (r *MongoRepo) Create(item *Item) error {
	ctx := context.TODO()

	result, err := r.collection.InsertOne(ctx, item)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperr.New(apperr.CodeConflict, "item already exists")
		}
		return err
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		item.MongoID = oid
		item.ID = oid.Hex()
	} else {
		return errors.New("failed to convert inserted ID to ObjectID")
	}

	return nil
}

func (r *MongoRepo) GetByID(id string) (*Item, error) {
	ctx := context.TODO()
	var item Item

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperr.New(apperr.CodeBadPayload, "invalid item id")
	}

	// просмотр страницы компонента считается за view
	err = r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$inc": bson.M{"views": 1}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&item)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.New(apperr.CodeNotFound, "item not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to increment views and fetch item: %w", err)
	}

	item.ID = item.MongoID.Hex()
	return &item, nil
}

func (r *MongoRepo) GetBySlug(slug string) (*Item, error) {
	ctx := context.TODO()
	var item Item

	err := r.collection.FindOne(ctx, bson.M{"slug": slug}).Decode(&item)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.New(apperr.CodeNotFound, "item not found")
	}
	if err != nil {
		return nil, err
	}

	item.ID = item.MongoID.Hex()
	return &item, nil
}

func (r *MongoRepo) GetAll() []*Item {
	return r.find(bson.D{})
}

func (r *MongoRepo) GetByCategory(category string) []*Item {
	return r.find(bson.D{{Key: "category", Value: category}})
}

func (r *MongoRepo) find(filter bson.D) []*Item {
	ctx := context.TODO()
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil
	}
	defer cursor.Close(ctx)

	var items []*Item
	for cursor.Next(ctx) {
		var item Item
		if err := cursor.Decode(&item); err != nil {
			continue
		}
		item.ID = item.MongoID.Hex()
		items = append(items, &item)
	}

	// featured first, then most viewed
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Featured != items[j].Featured {
			return items[i].Featured
		}
		return items[i].Views > items[j].Views
	})

	return items
}

func (r *MongoRepo) Update(id string, item *Item) (*Item, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperr.New(apperr.CodeBadPayload, "invalid item id")
	}

	update := bson.M{"$set": bson.M{
		"name":        item.Name,
		"category":    item.Category,
		"description": item.Description,
		"markup":      item.Markup,
		"tags":        item.Tags,
		"updated":     item.Updated,
	}}

	return r.findOneAndUpdate(objectID, update)
}

func (r *MongoRepo) SetFeatured(id string, featured bool) (*Item, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperr.New(apperr.CodeBadPayload, "invalid item id")
	}

	return r.findOneAndUpdate(objectID, bson.M{"$set": bson.M{"featured": featured}})
}

func (r *MongoRepo) findOneAndUpdate(objectID primitive.ObjectID, update bson.M) (*Item, error) {
	ctx := context.TODO()
	var item Item

	err := r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": objectID},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&item)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.New(apperr.CodeNotFound, "item not found")
	}
	if err != nil {
		return nil, err
	}

	item.ID = item.MongoID.Hex()
	return &item, nil
}

func (r *MongoRepo) Delete(id string) error {
	ctx := context.TODO()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperr.New(apperr.CodeBadPayload, "invalid item id")
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return apperr.New(apperr.CodeNotFound, "item not found")
	}
	return nil
}
