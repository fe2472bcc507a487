package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/greenspace/marketplace/internal/core/domain"
)

const collectionBookings = "bookings"

// BookingRepository implements ports.BookingRepository using MongoDB.
type BookingRepository struct {
	col *mongo.Collection
}

func NewBookingRepository(db *mongo.Database) *BookingRepository {
	return &BookingRepository{col: db.Collection(collectionBookings)}
}

type bookingDoc struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	domain.Booking `bson:",inline"`
}

func (d *bookingDoc) toDomain() *domain.Booking {
	b := d.Booking
	b.ID = d.ID.Hex()
	return &b
}

func (r *BookingRepository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, bookingDoc{Booking: *booking})
	if err != nil {
		return nil, fmt.Errorf("insert booking: %w", err)
	}

	created := *booking
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *BookingRepository) FindByID(ctx context.Context, id string) (*domain.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrBookingNotFound
	}

	var doc bookingDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, fmt.Errorf("find booking: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *BookingRepository) FindByIdempotencyKey(ctx context.Context, key string) (*domain.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc bookingDoc
	if err := r.col.FindOne(ctx, bson.M{"idempotency_key": key}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, fmt.Errorf("find booking by idempotency key: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *BookingRepository) ListByGardener(ctx context.Context, gardenerID string) ([]*domain.Booking, error) {
	return r.find(ctx, bson.M{"gardener_id": gardenerID})
}

func (r *BookingRepository) ListByLandowner(ctx context.Context, landownerID string) ([]*domain.Booking, error) {
	return r.find(ctx, bson.M{"landowner_id": landownerID})
}

func (r *BookingRepository) ListAll(ctx context.Context) ([]*domain.Booking, error) {
	return r.find(ctx, bson.M{})
}

// UpdateStatus moves a booking from one status to another. The filter matches
// on the current status, so a concurrent transition leaves the write with zero
// matches and the caller gets ErrInvalidTransition.
func (r *BookingRepository) UpdateStatus(ctx context.Context, id string, from, to domain.BookingStatus, reason string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrBookingNotFound
	}

	set := bson.M{
		"status":     string(to),
		"updated_at": time.Now().UTC(),
	}
	if reason != "" {
		set["rejection_reason"] = reason
	}

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": oid, "status": string(from)},
		bson.M{"$set": set},
	)
	if err != nil {
		return fmt.Errorf("update booking status: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrInvalidTransition
	}
	return nil
}

func (r *BookingRepository) CountAll(ctx context.Context) (int64, error) {
	return r.count(ctx, bson.M{})
}

func (r *BookingRepository) CountByStatus(ctx context.Context, status domain.BookingStatus) (int64, error) {
	return r.count(ctx, bson.M{"status": string(status)})
}

// EnsureIndexes creates the indexes backing the per-party lists and the
// idempotent create lookup. The idempotency key index is unique but sparse so
// bookings created without a key do not collide.
func (r *BookingRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "gardener_id", Value: 1}}},
		{Keys: bson.D{{Key: "landowner_id", Value: 1}}},
		{
			Keys:    bson.D{{Key: "idempotency_key", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true),
		},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

func (r *BookingRepository) find(ctx context.Context, query bson.M) ([]*domain.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("find bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []*domain.Booking
	for cursor.Next(ctx) {
		var doc bookingDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode booking: %w", err)
		}
		bookings = append(bookings, doc.toDomain())
	}
	return bookings, cursor.Err()
}

func (r *BookingRepository) count(ctx context.Context, query bson.M) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	return r.col.CountDocuments(ctx, query)
}
