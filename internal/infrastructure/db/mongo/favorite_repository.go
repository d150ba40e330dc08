package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/travelplanner/booking-system/internal/core/domain"
)

const collectionFavorites = "favorites"

type FavoriteRepository struct {
	db  *mongo.Database
	col *mongo.Collection
}

func NewFavoriteRepository(db *mongo.Database) *FavoriteRepository {
	return &FavoriteRepository{db: db, col: db.Collection(collectionFavorites)}
}

type mongoFavorite struct {
	ID            int64 `bson:"_id"`
	UserID        int64 `bson:"user_id"`
	DestinationID int64 `bson:"destination_id"`
}

func (m mongoFavorite) toDomain() *domain.Favorite {
	return &domain.Favorite{ID: m.ID, UserID: m.UserID, DestinationID: m.DestinationID}
}

func (r *FavoriteRepository) Create(ctx context.Context, f *domain.Favorite) (*domain.Favorite, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := nextID(ctx, r.db, collectionFavorites)
	if err != nil {
		return nil, err
	}
	doc := mongoFavorite{ID: id, UserID: f.UserID, DestinationID: f.DestinationID}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrFavoriteExists
		}
		return nil, fmt.Errorf("insert favorite: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *FavoriteRepository) FindByID(ctx context.Context, id int64) (*domain.Favorite, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *FavoriteRepository) FindByOwnerAndDestination(ctx context.Context, userID, destinationID int64) (*domain.Favorite, error) {
	return r.findOne(ctx, bson.M{"user_id": userID, "destination_id": destinationID})
}

func (r *FavoriteRepository) findOne(ctx context.Context, filter bson.M) (*domain.Favorite, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mf mongoFavorite
	if err := r.col.FindOne(ctx, filter).Decode(&mf); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrFavoriteNotFound
		}
		return nil, fmt.Errorf("find favorite: %w", err)
	}
	return mf.toDomain(), nil
}

func (r *FavoriteRepository) FindByOwner(ctx context.Context, userID int64) ([]*domain.Favorite, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{"user_id": userID}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	var docs []mongoFavorite
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode favorites: %w", err)
	}
	out := make([]*domain.Favorite, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

// Delete only matches a favorite that still belongs to ownerID.
func (r *FavoriteRepository) Delete(ctx context.Context, id, ownerID int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id, "user_id": ownerID})
	if err != nil {
		return fmt.Errorf("delete favorite: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrFavoriteNotFound
	}
	return nil
}

func (r *FavoriteRepository) DeleteByDestination(ctx context.Context, destinationID int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.DeleteMany(ctx, bson.M{"destination_id": destinationID}); err != nil {
		return fmt.Errorf("delete favorites: %w", err)
	}
	return nil
}
