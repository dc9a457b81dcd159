// File: database/repository/availability/interface.go
package availabilityRepo

import (
	"context"

	"clinibook/database"
	"clinibook/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// AvailabilityRepository persists a professional's declared open-time windows.
// Windows are immutable: changes are delete + re-add.
type AvailabilityRepository interface {
	CreateMany(ctx context.Context, windows []models.AvailabilityWindow) ([]string, error)
	ListByProfessional(ctx context.Context, professionalID string) ([]models.AvailabilityWindow, error)
	// ListInRange filters by optional inclusive date bounds; empty bounds are open.
	ListInRange(ctx context.Context, professionalID, fromDate, toDate string) ([]models.AvailabilityWindow, error)
	ListByDate(ctx context.Context, professionalID, date string) ([]models.AvailabilityWindow, error)
	// DeleteExact removes windows matching all three fields and reports how many
	// matched. Zero matches is not an error.
	DeleteExact(ctx context.Context, professionalID, date, startTime, endTime string) (int64, error)
	DeleteByID(ctx context.Context, professionalID, windowID string) error
	EnsureIndexes() error
}

type mongoAvailabilityRepo struct {
	coll *mongo.Collection
}

// NewMongoAvailabilityRepo constructs a new MongoDB AvailabilityRepository.
func NewMongoAvailabilityRepo() AvailabilityRepository {
	return &mongoAvailabilityRepo{coll: database.DB().Collection("availabilities")}
}
