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

type groupMessageDoc struct {
	ID       string    `bson:"_id"`
	GroupID  string    `bson:"group_id"`
	SenderID string    `bson:"sender_id"`
	Body     string    `bson:"body"`
	SentOn   time.Time `bson:"sent_on"`
}

func (d groupMessageDoc) toDomain() domain.GroupMessage {
	return domain.GroupMessage{
		ID:       d.ID,
		GroupID:  d.GroupID,
		SenderID: d.SenderID,
		Body:     d.Body,
		SentOn:   d.SentOn,
	}
}

// MongoGroupMessageRepository implementa GroupMessageRepository sobre
// la colección group_messages.
type MongoGroupMessageRepository struct {
	coll *mongo.Collection
}

func NewMongoGroupMessageRepository(db *mongo.Database) *MongoGroupMessageRepository {
	return &MongoGroupMessageRepository{coll: db.Collection("group_messages")}
}

func (r *MongoGroupMessageRepository) Create(ctx context.Context, msg domain.GroupMessage) error {
	doc := groupMessageDoc{
		ID:       msg.ID,
		GroupID:  msg.GroupID,
		SenderID: msg.SenderID,
		Body:     msg.Body,
		SentOn:   msg.SentOn,
	}
	_, err := r.coll.InsertOne(ctx, doc)
	return err
}

func (r *MongoGroupMessageRepository) GetByID(ctx context.Context, id string) (domain.GroupMessage, error) {
	var doc groupMessageDoc
	err := r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.GroupMessage{}, ErrNotFound
	}
	if err != nil {
		return domain.GroupMessage{}, err
	}
	return doc.toDomain(), nil
}

func (r *MongoGroupMessageRepository) DeleteByID(ctx context.Context, id string) error {
	_, err := r.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	return err
}

func (r *MongoGroupMessageRepository) ListForGroup(ctx context.Context, groupID string) ([]domain.GroupMessage, error) {
	opts := options.Find().SetSort(bson.D{{Key: "sent_on", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.D{{Key: "group_id", Value: groupID}}, opts)
	if err != nil {
		return nil, err
	}

	var docs []groupMessageDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	messages := make([]domain.GroupMessage, 0, len(docs))
	for _, doc := range docs {
		messages = append(messages, doc.toDomain())
	}
	return messages, nil
}

func (r *MongoGroupMessageRepository) GetMostRecent(ctx context.Context, groupID string) (domain.GroupMessage, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "sent_on", Value: -1}})
	var doc groupMessageDoc
	err := r.coll.FindOne(ctx, bson.D{{Key: "group_id", Value: groupID}}, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.GroupMessage{}, ErrNotFound
	}
	if err != nil {
		return domain.GroupMessage{}, err
	}
	return doc.toDomain(), nil
}

func (r *MongoGroupMessageRepository) DeleteAllForGroup(ctx context.Context, groupID string) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, bson.D{{Key: "group_id", Value: groupID}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
