package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"bookwise/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// overlapFilter matches scheduled bookings of userID intersecting [start, end).
func overlapFilter(userID string, start, end time.Time, excludeID string) bson.M {
	filter := bson.M{
		"user_id":    userID,
		"status":     models.StatusScheduled,
		"start_time": bson.M{"$lt": end},
		"end_time":   bson.M{"$gt": start},
	}
	if excludeID != "" {
		filter["id"] = bson.M{"$ne": excludeID}
	}
	return filter
}

func (r *MongoBookingRepo) FindOverlapping(ctx context.Context, userID string, start, end time.Time, excludeID string) ([]models.Booking, error) {
	return r.find(ctx, overlapFilter(userID, start, end, excludeID), options.Find())
}

func (r *MongoBookingRepo) ListUpcoming(ctx context.Context, userID string, now time.Time, limit int) ([]models.Booking, error) {
	filter := bson.M{
		"user_id":    userID,
		"status":     models.StatusScheduled,
		"start_time": bson.M{"$gt": now},
	}
	opts := options.Find().SetSort(bson.D{{Key: "start_time", Value: 1}}).SetLimit(int64(limit))
	return r.find(ctx, filter, opts)
}

func (r *MongoBookingRepo) ListPast(ctx context.Context, userID string, now time.Time, limit int) ([]models.Booking, error) {
	filter := bson.M{
		"user_id":  userID,
		"end_time": bson.M{"$lt": now},
	}
	opts := options.Find().SetSort(bson.D{{Key: "end_time", Value: -1}}).SetLimit(int64(limit))
	return r.find(ctx, filter, opts)
}

func (r *MongoBookingRepo) ListAll(ctx context.Context, userID string, skip, limit int) ([]models.Booking, int64, error) {
	ctx, cancel := withTimeout(ctx, 10*time.Second)
	defer cancel()

	filter := bson.M{"user_id": userID}
	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count bookings: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "start_time", Value: 1}}).
		SetSkip(int64(skip)).
		SetLimit(int64(limit))
	bookings, err := r.find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	return bookings, total, nil
}

// ListByDateRange returns bookings whose start falls in [from, to], start ascending.
func (r *MongoBookingRepo) ListByDateRange(ctx context.Context, userID string, from, to time.Time) ([]models.Booking, error) {
	filter := bson.M{
		"user_id":    userID,
		"start_time": bson.M{"$gte": from, "$lte": to},
	}
	opts := options.Find().SetSort(bson.D{{Key: "start_time", Value: 1}})
	return r.find(ctx, filter, opts)
}

func (r *MongoBookingRepo) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Booking, error) {
	ctx, cancel := withTimeout(ctx, 10*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	defer cursor.Close(ctx)

	bookings := []models.Booking{}
	for cursor.Next(ctx) {
		var b models.Booking
		if err := cursor.Decode(&b); err != nil {
			return nil, fmt.Errorf("failed to decode booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("booking cursor: %w", err)
	}
	return bookings, nil
}
