package booking

import (
	"context"
	"time"

	"deskhive/db"
	"deskhive/models"
	"deskhive/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// mongoStore backs the engine with the shared Mongo collections.
type mongoStore struct{}

func NewMongoStore() Store {
	return mongoStore{}
}

func (mongoStore) Workspace(ctx context.Context, id string) (*models.Workspace, error) {
	var ws models.Workspace
	err := db.WorkspacesCollection.FindOne(ctx, bson.M{"id": id}).Decode(&ws)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &ws, nil
}

func (mongoStore) HasOverlap(ctx context.Context, workspaceID string, start, end time.Time) (bool, error) {
	// [s1,e1) and [s2,e2) overlap iff s1 < e2 && s2 < e1; expressed here as
	// an indexed range query on the workspace's bookings.
	count, err := db.BookingsCollection.CountDocuments(ctx, bson.M{
		"workspace_id": workspaceID,
		"start_time":   bson.M{"$lt": end},
		"end_time":     bson.M{"$gt": start},
	})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (mongoStore) InsertBooking(ctx context.Context, b *models.Booking) error {
	_, err := db.BookingsCollection.InsertOne(ctx, b)
	return err
}

func (mongoStore) Booking(ctx context.Context, id string) (*models.Booking, error) {
	var b models.Booking
	err := db.BookingsCollection.FindOne(ctx, bson.M{"id": id}).Decode(&b)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (mongoStore) DeleteBooking(ctx context.Context, id string) error {
	res, err := db.BookingsCollection.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (mongoStore) BookingsByUser(ctx context.Context, userID string) ([]models.Booking, error) {
	return utils.FindAndDecode[models.Booking](ctx, db.BookingsCollection, bson.M{"userid": userID})
}

func (mongoStore) RemoveWorkspace(ctx context.Context, workspaceID string) error {
	res, err := db.WorkspacesCollection.DeleteOne(ctx, bson.M{"id": workspaceID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	_, err = db.BookingsCollection.DeleteMany(ctx, bson.M{"workspace_id": workspaceID})
	return err
}
