package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/travelplanner/booking-system/internal/core/domain"
)

const collectionBookings = "bookings"

type BookingRepository struct {
	db  *mongo.Database
	col *mongo.Collection
}

func NewBookingRepository(db *mongo.Database) *BookingRepository {
	return &BookingRepository{db: db, col: db.Collection(collectionBookings)}
}

type mongoBooking struct {
	ID            int64     `bson:"_id"`
	UserID        int64     `bson:"user_id"`
	DestinationID int64     `bson:"destination_id"`
	StartDate     time.Time `bson:"start_date"`
	EndDate       time.Time `bson:"end_date"`
	Travelers     int       `bson:"travelers"`
	Status        string    `bson:"status"`
	CreatedAt     time.Time `bson:"created_at"`
}

func (m mongoBooking) toDomain() *domain.Booking {
	return &domain.Booking{
		ID:            m.ID,
		UserID:        m.UserID,
		DestinationID: m.DestinationID,
		StartDate:     m.StartDate.UTC(),
		EndDate:       m.EndDate.UTC(),
		Travelers:     m.Travelers,
		Status:        domain.BookingStatus(m.Status),
		CreatedAt:     m.CreatedAt.UTC(),
	}
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := nextID(ctx, r.db, collectionBookings)
	if err != nil {
		return nil, err
	}
	doc := mongoBooking{
		ID:            id,
		UserID:        b.UserID,
		DestinationID: b.DestinationID,
		StartDate:     b.StartDate,
		EndDate:       b.EndDate,
		Travelers:     b.Travelers,
		Status:        string(b.Status),
		CreatedAt:     b.CreatedAt,
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert booking: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *BookingRepository) FindByID(ctx context.Context, id int64) (*domain.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mb mongoBooking
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&mb); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, fmt.Errorf("find booking: %w", err)
	}
	return mb.toDomain(), nil
}

// FindByOwner is always filtered by user_id; it never returns other users' bookings.
func (r *BookingRepository) FindByOwner(ctx context.Context, userID int64) ([]*domain.Booking, error) {
	return r.find(ctx, bson.M{"user_id": userID})
}

func (r *BookingRepository) FindAll(ctx context.Context) ([]*domain.Booking, error) {
	return r.find(ctx, bson.M{})
}

func (r *BookingRepository) find(ctx context.Context, filter bson.M) ([]*domain.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	var docs []mongoBooking
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode bookings: %w", err)
	}
	out := make([]*domain.Booking, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

// UpdateStatus only matches a booking that still belongs to ownerID.
func (r *BookingRepository) UpdateStatus(ctx context.Context, id, ownerID int64, status domain.BookingStatus) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id, "user_id": ownerID},
		bson.M{"$set": bson.M{"status": string(status)}},
	)
	if err != nil {
		return fmt.Errorf("update booking status: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrBookingNotFound
	}
	return nil
}

func (r *BookingRepository) ExistsForDestination(ctx context.Context, destinationID int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, bson.M{"destination_id": destinationID}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("count bookings: %w", err)
	}
	return n > 0, nil
}
