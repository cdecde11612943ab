package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"tuiter/internal/domain"
)

type groupDoc struct {
	ID        string    `bson:"_id"`
	Name      string    `bson:"name"`
	MemberIDs []string  `bson:"member_ids"`
	CreatedOn time.Time `bson:"created_on"`
}

func (d groupDoc) toDomain() domain.Group {
	return domain.Group{
		ID:        d.ID,
		Name:      d.Name,
		MemberIDs: d.MemberIDs,
		CreatedOn: d.CreatedOn,
	}
}

// MongoGroupRepository implementa GroupRepository sobre la colección
// groups.
type MongoGroupRepository struct {
	coll *mongo.Collection
}

func NewMongoGroupRepository(db *mongo.Database) *MongoGroupRepository {
	return &MongoGroupRepository{coll: db.Collection("groups")}
}

func (r *MongoGroupRepository) Create(ctx context.Context, group domain.Group) error {
	doc := groupDoc{
		ID:        group.ID,
		Name:      group.Name,
		MemberIDs: group.MemberIDs,
		CreatedOn: group.CreatedOn,
	}
	_, err := r.coll.InsertOne(ctx, doc)
	return err
}

func (r *MongoGroupRepository) GetByID(ctx context.Context, id string) (domain.Group, error) {
	var doc groupDoc
	err := r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.Group{}, ErrNotFound
	}
	if err != nil {
		return domain.Group{}, err
	}
	return doc.toDomain(), nil
}

func (r *MongoGroupRepository) Update(ctx context.Context, id string, patch domain.GroupPatch) error {
	set := bson.D{}
	if patch.Name != nil {
		set = append(set, bson.E{Key: "name", Value: *patch.Name})
	}
	if patch.MemberIDs != nil {
		set = append(set, bson.E{Key: "member_ids", Value: patch.MemberIDs})
	}
	if len(set) == 0 {
		_, err := r.GetByID(ctx, id)
		return err
	}

	res, err := r.coll.UpdateOne(ctx, bson.D{{Key: "_id", Value: id}}, bson.D{{Key: "$set", Value: set}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoGroupRepository) DeleteByID(ctx context.Context, id string) error {
	_, err := r.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	return err
}

func (r *MongoGroupRepository) ListAll(ctx context.Context) ([]domain.Group, error) {
	return r.find(ctx, bson.D{})
}

func (r *MongoGroupRepository) ListForUser(ctx context.Context, userID string) ([]domain.Group, error) {
	return r.find(ctx, bson.D{{Key: "member_ids", Value: userID}})
}

func (r *MongoGroupRepository) find(ctx context.Context, filter bson.D) ([]domain.Group, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_on", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}

	var docs []groupDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	groups := make([]domain.Group, 0, len(docs))
	for _, doc := range docs {
		groups = append(groups, doc.toDomain())
	}
	return groups, nil
}
