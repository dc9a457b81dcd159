// File: database/repository/client/client.go
package clientRepo

import (
	"context"
	"fmt"
	"time"

	"clinibook/database"
	"clinibook/models"
	"clinibook/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ClientRepository persists patient-side records and their reservation history.
type ClientRepository interface {
	Create(ctx context.Context, client *models.Client) error
	GetByID(ctx context.Context, id string) (*models.Client, error)
	GetByUserID(ctx context.Context, userID string) (*models.Client, error)
	ListAll(ctx context.Context) ([]models.Client, error)
	AppendHistory(ctx context.Context, clientID, reservationID string) error
	RemoveHistory(ctx context.Context, clientID, reservationID string) error
	Delete(ctx context.Context, id string) error
	EnsureIndexes() error
}

type mongoClientRepo struct {
	coll *mongo.Collection
}

// NewMongoClientRepo constructs a new MongoDB ClientRepository.
func NewMongoClientRepo() ClientRepository {
	return &mongoClientRepo{coll: database.DB().Collection("clients")}
}

func (r *mongoClientRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_user_id"),
		},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create client indexes: %w", err)
	}
	return nil
}

func (r *mongoClientRepo) Create(ctx context.Context, client *models.Client) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if client.History == nil {
		client.History = []string{}
	}
	if _, err := r.coll.InsertOne(ctx, client); err != nil {
		return fmt.Errorf("error creating client: %w", err)
	}
	return nil
}

func (r *mongoClientRepo) GetByID(ctx context.Context, id string) (*models.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var client models.Client
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&client); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, utils.NewDomainErrorf(utils.CodeNotFound, "client %s not found", id)
		}
		return nil, fmt.Errorf("error fetching client %s: %w", id, err)
	}
	return &client, nil
}

func (r *mongoClientRepo) GetByUserID(ctx context.Context, userID string) (*models.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var client models.Client
	if err := r.coll.FindOne(ctx, bson.M{"user_id": userID}).Decode(&client); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, utils.NewDomainErrorf(utils.CodeNotFound, "no client for user %s", userID)
		}
		return nil, fmt.Errorf("error fetching client by user id: %w", err)
	}
	return &client, nil
}

func (r *mongoClientRepo) ListAll(ctx context.Context) ([]models.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("error listing clients: %w", err)
	}
	defer cursor.Close(ctx)

	var clients []models.Client
	if err := cursor.All(ctx, &clients); err != nil {
		return nil, fmt.Errorf("error decoding clients: %w", err)
	}
	return clients, nil
}

func (r *mongoClientRepo) AppendHistory(ctx context.Context, clientID, reservationID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"id": clientID},
		bson.M{
			"$addToSet": bson.M{"history": reservationID},
			"$set":      bson.M{"updated_at": time.Now()},
		},
	)
	if err != nil {
		return fmt.Errorf("error appending to client history: %w", err)
	}
	if res.MatchedCount == 0 {
		return utils.NewDomainErrorf(utils.CodeNotFound, "client %s not found", clientID)
	}
	return nil
}

func (r *mongoClientRepo) RemoveHistory(ctx context.Context, clientID, reservationID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"id": clientID},
		bson.M{
			"$pull": bson.M{"history": reservationID},
			"$set":  bson.M{"updated_at": time.Now()},
		},
	)
	if err != nil {
		return fmt.Errorf("error removing from client history: %w", err)
	}
	if res.MatchedCount == 0 {
		return utils.NewDomainErrorf(utils.CodeNotFound, "client %s not found", clientID)
	}
	return nil
}

func (r *mongoClientRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("error deleting client %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return utils.NewDomainErrorf(utils.CodeNotFound, "client %s not found", id)
	}
	return nil
}
