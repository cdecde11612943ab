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

type messageDoc struct {
	ID          string    `bson:"_id"`
	SenderID    string    `bson:"sender_id"`
	RecipientID string    `bson:"recipient_id"`
	Body        string    `bson:"body"`
	Attachment  string    `bson:"attachment,omitempty"`
	SentOn      time.Time `bson:"sent_on"`
}

func (d messageDoc) toDomain() domain.Message {
	return domain.Message{
		ID:          d.ID,
		SenderID:    d.SenderID,
		RecipientID: d.RecipientID,
		Body:        d.Body,
		Attachment:  domain.AttachmentKind(d.Attachment),
		SentOn:      d.SentOn,
	}
}

// MongoMessageRepository implementa MessageRepository sobre la
// colección messages.
type MongoMessageRepository struct {
	coll *mongo.Collection
}

func NewMongoMessageRepository(db *mongo.Database) *MongoMessageRepository {
	return &MongoMessageRepository{coll: db.Collection("messages")}
}

func (r *MongoMessageRepository) Create(ctx context.Context, msg domain.Message) error {
	doc := messageDoc{
		ID:          msg.ID,
		SenderID:    msg.SenderID,
		RecipientID: msg.RecipientID,
		Body:        msg.Body,
		Attachment:  string(msg.Attachment),
		SentOn:      msg.SentOn,
	}
	_, err := r.coll.InsertOne(ctx, doc)
	return err
}

func (r *MongoMessageRepository) GetByID(ctx context.Context, id string) (domain.Message, error) {
	var doc messageDoc
	err := r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.Message{}, ErrNotFound
	}
	if err != nil {
		return domain.Message{}, err
	}
	return doc.toDomain(), nil
}

func (r *MongoMessageRepository) Update(ctx context.Context, id string, patch domain.MessagePatch) error {
	set := bson.D{}
	if patch.Body != nil {
		set = append(set, bson.E{Key: "body", Value: *patch.Body})
	}
	if patch.Attachment != nil {
		set = append(set, bson.E{Key: "attachment", Value: string(*patch.Attachment)})
	}
	if len(set) == 0 {
		// Nada que actualizar; verificamos existencia para conservar
		// la semántica de NotFound.
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

func (r *MongoMessageRepository) DeleteByID(ctx context.Context, id string) error {
	_, err := r.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	return err
}

func (r *MongoMessageRepository) ListAll(ctx context.Context) ([]domain.Message, error) {
	return r.find(ctx, bson.D{})
}

func (r *MongoMessageRepository) ListSentBy(ctx context.Context, userID string) ([]domain.Message, error) {
	return r.find(ctx, bson.D{{Key: "sender_id", Value: userID}})
}

func (r *MongoMessageRepository) ListReceivedBy(ctx context.Context, userID string) ([]domain.Message, error) {
	return r.find(ctx, bson.D{{Key: "recipient_id", Value: userID}})
}

func (r *MongoMessageRepository) ListBetween(ctx context.Context, userA, userB string) ([]domain.Message, error) {
	// $or sobre ambas direcciones del intercambio.
	filter := bson.D{{Key: "$or", Value: bson.A{
		bson.D{{Key: "sender_id", Value: userA}, {Key: "recipient_id", Value: userB}},
		bson.D{{Key: "sender_id", Value: userB}, {Key: "recipient_id", Value: userA}},
	}}}
	return r.find(ctx, filter)
}

func (r *MongoMessageRepository) DeleteAllSentBy(ctx context.Context, userID string) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, bson.D{{Key: "sender_id", Value: userID}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (r *MongoMessageRepository) DeleteAllReceivedBy(ctx context.Context, userID string) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, bson.D{{Key: "recipient_id", Value: userID}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (r *MongoMessageRepository) find(ctx context.Context, filter bson.D) ([]domain.Message, error) {
	opts := options.Find().SetSort(bson.D{{Key: "sent_on", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}

	var docs []messageDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	messages := make([]domain.Message, 0, len(docs))
	for _, doc := range docs {
		messages = append(messages, doc.toDomain())
	}
	return messages, nil
}
