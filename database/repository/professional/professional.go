// File: database/repository/professional/professional.go
package professionalRepo

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

// ProfessionalRepository persists practitioner-side records.
type ProfessionalRepository interface {
	Create(ctx context.Context, pro *models.Professional) error
	GetByID(ctx context.Context, id string) (*models.Professional, error)
	GetByUserID(ctx context.Context, userID string) (*models.Professional, error)
	ListAll(ctx context.Context) ([]models.Professional, error)
	Delete(ctx context.Context, id string) error
	EnsureIndexes() error
}

type mongoProfessionalRepo struct {
	coll *mongo.Collection
}

// NewMongoProfessionalRepo constructs a new MongoDB ProfessionalRepository.
func NewMongoProfessionalRepo() ProfessionalRepository {
	return &mongoProfessionalRepo{coll: database.DB().Collection("professionals")}
}

func (r *mongoProfessionalRepo) EnsureIndexes() error {
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
		return fmt.Errorf("failed to create professional indexes: %w", err)
	}
	return nil
}

func (r *mongoProfessionalRepo) Create(ctx context.Context, pro *models.Professional) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, pro); err != nil {
		return fmt.Errorf("error creating professional: %w", err)
	}
	return nil
}

func (r *mongoProfessionalRepo) GetByID(ctx context.Context, id string) (*models.Professional, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var pro models.Professional
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&pro); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, utils.NewDomainErrorf(utils.CodeNotFound, "professional %s not found", id)
		}
		return nil, fmt.Errorf("error fetching professional %s: %w", id, err)
	}
	return &pro, nil
}

func (r *mongoProfessionalRepo) GetByUserID(ctx context.Context, userID string) (*models.Professional, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var pro models.Professional
	if err := r.coll.FindOne(ctx, bson.M{"user_id": userID}).Decode(&pro); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, utils.NewDomainErrorf(utils.CodeNotFound, "no professional for user %s", userID)
		}
		return nil, fmt.Errorf("error fetching professional by user id: %w", err)
	}
	return &pro, nil
}

func (r *mongoProfessionalRepo) ListAll(ctx context.Context) ([]models.Professional, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("error listing professionals: %w", err)
	}
	defer cursor.Close(ctx)

	var pros []models.Professional
	if err := cursor.All(ctx, &pros); err != nil {
		return nil, fmt.Errorf("error decoding professionals: %w", err)
	}
	return pros, nil
}

func (r *mongoProfessionalRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("error deleting professional %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return utils.NewDomainErrorf(utils.CodeNotFound, "professional %s not found", id)
	}
	return nil
}
