// Package mongo is the document PlaceStore, selected with STORE_DRIVER=mongo (the default).
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"tourist_places/internal/adapters/observability"
	"tourist_places/internal/domain"
)

const (
	driver     = "mongo"
	collection = "places"
)

// Connect dials uri and pings the primary before returning.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	log.Info().Msg("connected to mongodb")
	return client, nil
}

// placeDoc is the stored shape; the ObjectID surfaces as Place.ID in hex.
type placeDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	domain.Place `bson:",inline"`
}

type Store struct {
	coll *mongo.Collection
}

func New(client *mongo.Client, dbName string) *Store {
	return &Store{coll: client.Database(dbName).Collection(collection)}
}

// missingSlug matches documents written without a slug, such as those stored by earlier
// versions of the service in the same collection.
var missingSlug = bson.M{"slug": bson.M{"$exists": false}}

// indexModels lists the collection indexes. The slug index only covers documents that
// carry a slug, so a legacy document can never block the build.
func indexModels() []mongo.IndexModel {
	return []mongo.IndexModel{
		{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true).SetName("uq_name")},
		{Keys: bson.D{{Key: "slug", Value: 1}}, Options: options.Index().SetUnique(true).SetName("uq_slug").
			SetPartialFilterExpression(bson.M{"slug": bson.M{"$exists": true}})},
		{Keys: bson.D{{Key: "category", Value: 1}}, Options: options.Index().SetName("idx_category")},
	}
}

// EnsureIndexes backfills missing slugs, then creates the unique name and slug indexes
// populate relies on.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	if err := s.backfillSlugs(ctx); err != nil {
		return fmt.Errorf("backfill slugs: %w", err)
	}
	_, err := s.coll.Indexes().CreateMany(ctx, indexModels())
	return err
}

// backfillSlugs derives a slug from the name of every document lacking one. A document
// whose slug would collide with an existing one is left untouched and logged.
func (s *Store) backfillSlugs(ctx context.Context) error {
	cur, err := s.coll.Find(ctx, missingSlug, options.Find().SetProjection(bson.M{"name": 1}))
	if err != nil {
		return err
	}
	defer cur.Close(ctx)

	filled := 0
	for cur.Next(ctx) {
		var d struct {
			ID   primitive.ObjectID `bson:"_id"`
			Name string             `bson:"name"`
		}
		if err := cur.Decode(&d); err != nil {
			return err
		}
		slug := domain.Slugify(d.Name)
		if slug == "" {
			log.Warn().Str("id", d.ID.Hex()).Msg("place without a name left without slug")
			continue
		}
		n, err := s.coll.CountDocuments(ctx, bson.M{"slug": slug})
		if err != nil {
			return err
		}
		if n > 0 {
			log.Warn().Str("id", d.ID.Hex()).Str("slug", slug).Msg("slug already taken, left without slug")
			continue
		}
		if _, err := s.coll.UpdateByID(ctx, d.ID, bson.M{"$set": bson.M{"slug": slug}}); err != nil {
			return err
		}
		filled++
	}
	if err := cur.Err(); err != nil {
		return err
	}
	if filled > 0 {
		log.Info().Int("filled", filled).Msg("backfilled place slugs")
	}
	return nil
}

// InsertIfAbsent upserts on name with $setOnInsert, so an existing record is never
// modified. A racing insert that loses on the unique index counts as already present.
func (s *Store) InsertIfAbsent(ctx context.Context, p domain.Place) (ok bool, err error) {
	defer func(start time.Time) { observability.ObserveStore(driver, "insert", err, start) }(time.Now())

	if p.Slug == "" {
		p.Slug = domain.Slugify(p.Name)
	}
	res, err := s.coll.UpdateOne(ctx,
		bson.M{"name": p.Name},
		bson.M{"$setOnInsert": placeDoc{Place: p}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return false, nil
		}
		return false, err
	}
	return res.UpsertedCount == 1, nil
}

// filterDoc translates f into a query document; unset criteria are omitted.
func filterDoc(f domain.PlaceFilter) bson.M {
	q := bson.M{}
	if f.MaxCost != nil {
		q["cost"] = bson.M{"$lte": *f.MaxCost}
	}
	if f.Category != nil {
		q["category"] = *f.Category
	}
	if f.MinRating != nil {
		q["rating"] = bson.M{"$gte": *f.MinRating}
	}
	return q
}

func (s *Store) Find(ctx context.Context, f domain.PlaceFilter) (out []domain.Place, err error) {
	defer func(start time.Time) { observability.ObserveStore(driver, "find", err, start) }(time.Now())

	cur, err := s.coll.Find(ctx, filterDoc(f), options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out = []domain.Place{}
	for cur.Next(ctx) {
		var d placeDoc
		if err := cur.Decode(&d); err != nil {
			return nil, err
		}
		out = append(out, d.place())
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) FindBySlug(ctx context.Context, slug string) (p domain.Place, err error) {
	defer func(start time.Time) { observability.ObserveStore(driver, "find_slug", err, start) }(time.Now())

	var d placeDoc
	if err := s.coll.FindOne(ctx, bson.M{"slug": slug}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.Place{}, domain.ErrNotFound
		}
		return domain.Place{}, err
	}
	return d.place(), nil
}

func (d placeDoc) place() domain.Place {
	p := d.Place
	p.ID = d.ID.Hex()
	return p
}
