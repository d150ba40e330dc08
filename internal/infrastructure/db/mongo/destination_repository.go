package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/travelplanner/booking-system/internal/core/domain"
	"github.com/travelplanner/booking-system/internal/core/ports"
)

const collectionDestinations = "destinations"

type DestinationRepository struct {
	db  *mongo.Database
	col *mongo.Collection
}

func NewDestinationRepository(db *mongo.Database) *DestinationRepository {
	return &DestinationRepository{db: db, col: db.Collection(collectionDestinations)}
}

type mongoDestination struct {
	ID          int64   `bson:"_id"`
	Name        string  `bson:"name"`
	Country     string  `bson:"country"`
	City        string  `bson:"city"`
	Description string  `bson:"description"`
	ImageURL    string  `bson:"image_url"`
	Price       float64 `bson:"price"`
}

func (m mongoDestination) toDomain() *domain.Destination {
	return &domain.Destination{
		ID:          m.ID,
		Name:        m.Name,
		Country:     m.Country,
		City:        m.City,
		Description: m.Description,
		ImageURL:    m.ImageURL,
		Price:       m.Price,
	}
}

func fromDestination(d *domain.Destination) mongoDestination {
	return mongoDestination{
		ID:          d.ID,
		Name:        d.Name,
		Country:     d.Country,
		City:        d.City,
		Description: d.Description,
		ImageURL:    d.ImageURL,
		Price:       d.Price,
	}
}

func (r *DestinationRepository) FindByID(ctx context.Context, id int64) (*domain.Destination, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var md mongoDestination
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&md); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrDestinationNotFound
		}
		return nil, fmt.Errorf("find destination: %w", err)
	}
	return md.toDomain(), nil
}

func (r *DestinationRepository) FindByIDs(ctx context.Context, ids []int64) (map[int64]*domain.Destination, error) {
	out := make(map[int64]*domain.Destination, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("find destinations: %w", err)
	}
	var docs []mongoDestination
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode destinations: %w", err)
	}
	for _, d := range docs {
		out[d.ID] = d.toDomain()
	}
	return out, nil
}

// destinationQuery translates a catalogue filter into a Mongo filter and sort.
func destinationQuery(f ports.DestinationFilter) (bson.M, bson.D) {
	filter := bson.M{}
	if f.Search != "" {
		re := primitive.Regex{Pattern: regexp.QuoteMeta(f.Search), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"name": re},
			bson.M{"city": re},
			bson.M{"country": re},
		}
	}
	if f.Country != "" {
		filter["country"] = primitive.Regex{Pattern: "^" + regexp.QuoteMeta(f.Country) + "$", Options: "i"}
	}
	price := bson.M{}
	if f.MinPrice != nil {
		price["$gte"] = *f.MinPrice
	}
	if f.MaxPrice != nil {
		price["$lte"] = *f.MaxPrice
	}
	if len(price) > 0 {
		filter["price"] = price
	}

	dir := 1
	if f.SortOrder == "desc" {
		dir = -1
	}
	sort := bson.D{}
	switch f.SortBy {
	case "price", "name", "country":
		sort = append(sort, bson.E{Key: f.SortBy, Value: dir})
	}
	sort = append(sort, bson.E{Key: "_id", Value: dir})
	return filter, sort
}

func (r *DestinationRepository) List(ctx context.Context, f ports.DestinationFilter) ([]*domain.Destination, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter, sort := destinationQuery(f)
	// Strength 2 makes name and country ordering case-insensitive.
	opts := options.Find().SetSort(sort).SetCollation(&options.Collation{Locale: "en", Strength: 2})
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list destinations: %w", err)
	}
	var docs []mongoDestination
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode destinations: %w", err)
	}
	out := make([]*domain.Destination, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (r *DestinationRepository) Create(ctx context.Context, d *domain.Destination) (*domain.Destination, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := nextID(ctx, r.db, collectionDestinations)
	if err != nil {
		return nil, err
	}
	doc := fromDestination(d)
	doc.ID = id
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert destination: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *DestinationRepository) Update(ctx context.Context, d *domain.Destination) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := fromDestination(d)
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": d.ID}, doc)
	if err != nil {
		return fmt.Errorf("update destination: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrDestinationNotFound
	}
	return nil
}

func (r *DestinationRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete destination: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrDestinationNotFound
	}
	return nil
}
