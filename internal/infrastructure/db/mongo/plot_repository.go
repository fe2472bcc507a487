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
	"github.com/greenspace/marketplace/internal/core/ports"
)

const collectionPlots = "plots"

// PlotRepository implements ports.PlotRepository using MongoDB.
type PlotRepository struct {
	col *mongo.Collection
}

func NewPlotRepository(db *mongo.Database) *PlotRepository {
	return &PlotRepository{col: db.Collection(collectionPlots)}
}

type plotDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	domain.Plot `bson:",inline"`
}

func (d *plotDoc) toDomain() *domain.Plot {
	p := d.Plot
	p.ID = d.ID.Hex()
	return &p
}

func (r *PlotRepository) Create(ctx context.Context, plot *domain.Plot) (*domain.Plot, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, plotDoc{Plot: *plot})
	if err != nil {
		return nil, fmt.Errorf("insert plot: %w", err)
	}

	created := *plot
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *PlotRepository) FindByID(ctx context.Context, id string) (*domain.Plot, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrPlotNotFound
	}

	var doc plotDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPlotNotFound
		}
		return nil, fmt.Errorf("find plot: %w", err)
	}
	return doc.toDomain(), nil
}

// Search returns approved, available plots matching the public filters.
func (r *PlotRepository) Search(ctx context.Context, filter ports.PlotSearchFilter) ([]*domain.Plot, error) {
	query := bson.M{
		"is_available":        true,
		"verification_status": string(domain.VerificationApproved),
	}
	if filter.City != "" {
		query["location.city"] = primitive.Regex{Pattern: filter.City, Options: "i"}
	}
	if filter.SoilType != "" {
		query["soil_type"] = filter.SoilType
	}
	if filter.WaterAvailability != "" {
		query["water_availability"] = filter.WaterAvailability
	}
	size := bson.M{}
	if filter.MinSize > 0 {
		size["$gte"] = filter.MinSize
	}
	if filter.MaxSize > 0 {
		size["$lte"] = filter.MaxSize
	}
	if len(size) > 0 {
		query["size.value"] = size
	}

	return r.find(ctx, query)
}

func (r *PlotRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Plot, error) {
	return r.find(ctx, bson.M{"owner_id": ownerID})
}

func (r *PlotRepository) ListByVerification(ctx context.Context, status domain.VerificationStatus) ([]*domain.Plot, error) {
	query := bson.M{}
	if status != "" {
		query["verification_status"] = string(status)
	}
	return r.find(ctx, query)
}

// Update persists the owner-editable detail fields. Availability and
// verification state are deliberately left out; they have their own writes.
func (r *PlotRepository) Update(ctx context.Context, plot *domain.Plot) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(plot.ID)
	if err != nil {
		return domain.ErrPlotNotFound
	}

	update := bson.M{"$set": bson.M{
		"title":              plot.Title,
		"description":        plot.Description,
		"location":           plot.Location,
		"size":               plot.Size,
		"soil_type":          string(plot.SoilType),
		"water_availability": string(plot.WaterAvailability),
		"amenities":          plot.Amenities,
		"images":             plot.Images,
	}}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("update plot: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrPlotNotFound
	}
	return nil
}

func (r *PlotRepository) Delete(ctx context.Context, id, ownerID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrPlotNotFound
	}

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid, "owner_id": ownerID})
	if err != nil {
		return fmt.Errorf("delete plot: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrPlotNotFound
	}
	return nil
}

func (r *PlotRepository) ReplaceDocuments(ctx context.Context, id, ownerID string, docs []domain.PlotDocument) (*domain.Plot, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrPlotNotFound
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc plotDoc
	err = r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": oid, "owner_id": ownerID},
		bson.M{"$set": bson.M{"documents": docs}},
		opts,
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPlotNotFound
		}
		return nil, fmt.Errorf("replace plot documents: %w", err)
	}
	return doc.toDomain(), nil
}

// SetVerification updates the review state. Rejection also clears
// is_available so the listing drops out of public search.
func (r *PlotRepository) SetVerification(ctx context.Context, id string, status domain.VerificationStatus, reason string) (*domain.Plot, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrPlotNotFound
	}

	set := bson.M{"verification_status": string(status)}
	if status == domain.VerificationRejected {
		set["rejection_reason"] = reason
		set["is_available"] = false
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc plotDoc
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPlotNotFound
		}
		return nil, fmt.Errorf("set plot verification: %w", err)
	}
	return doc.toDomain(), nil
}

// ClaimAvailability atomically flips is_available true -> false. The filter
// matches only an available plot, so of two concurrent claims exactly one
// modifies the document; the other gets ErrPlotUnavailable.
func (r *PlotRepository) ClaimAvailability(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrPlotNotFound
	}

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": oid, "is_available": true},
		bson.M{"$set": bson.M{"is_available": false}},
	)
	if err != nil {
		return fmt.Errorf("claim availability: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrPlotUnavailable
	}
	return nil
}

// ReleaseAvailability flips is_available back to true.
func (r *PlotRepository) ReleaseAvailability(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrPlotNotFound
	}

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"is_available": true}},
	)
	if err != nil {
		return fmt.Errorf("release availability: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrPlotNotFound
	}
	return nil
}

func (r *PlotRepository) CountAll(ctx context.Context) (int64, error) {
	return r.count(ctx, bson.M{})
}

func (r *PlotRepository) CountBookable(ctx context.Context) (int64, error) {
	return r.count(ctx, bson.M{
		"is_available":        true,
		"verification_status": string(domain.VerificationApproved),
	})
}

func (r *PlotRepository) CountByVerification(ctx context.Context, status domain.VerificationStatus) (int64, error) {
	return r.count(ctx, bson.M{"verification_status": string(status)})
}

// EnsureIndexes creates the indexes the search and list queries rely on.
func (r *PlotRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "owner_id", Value: 1}}},
		{Keys: bson.D{{Key: "is_available", Value: 1}, {Key: "verification_status", Value: 1}}},
		{Keys: bson.D{{Key: "location.city", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

func (r *PlotRepository) find(ctx context.Context, query bson.M) ([]*domain.Plot, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("find plots: %w", err)
	}
	defer cursor.Close(ctx)

	var plots []*domain.Plot
	for cursor.Next(ctx) {
		var doc plotDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode plot: %w", err)
		}
		plots = append(plots, doc.toDomain())
	}
	return plots, cursor.Err()
}

func (r *PlotRepository) count(ctx context.Context, query bson.M) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	return r.col.CountDocuments(ctx, query)
}
