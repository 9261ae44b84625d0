// Package mongo implements store.Store against a MongoDB collection.
// Every user-influenced value reaches a pipeline only as a typed literal
// argument, never spliced into query structure.
package mongo

import (
	"context"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/corpusio/newsline/pkg/newsline/internalerr"
	"github.com/corpusio/newsline/pkg/newsline/store"
)

// mongoStore implements the Store interface on one collection.
type mongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// Open connects to the server, verifies it is reachable, and binds the
// target database/collection.
func Open(ctx context.Context, uri, database, collection string) (store.Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect %s: %v: %w", uri, err, internalerr.ErrStoreUnavailable)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping %s: %v: %w", uri, err, internalerr.ErrStoreUnavailable)
	}
	return &mongoStore{
		client: client,
		coll:   client.Database(database).Collection(collection),
	}, nil
}

// Close disconnects from the server.
func (s *mongoStore) Close() error {
	return s.client.Disconnect(context.Background())
}

// Reset drops the collection; MongoDB recreates it on first insert.
func (s *mongoStore) Reset(ctx context.Context) error {
	if err := s.coll.Drop(ctx); err != nil {
		return fmt.Errorf("drop collection: %v: %w", err, internalerr.ErrStoreUnavailable)
	}
	return nil
}

// HasData reports whether the collection holds any documents; the query
// CLI uses it to point an operator at the loader first.
func (s *mongoStore) HasData(ctx context.Context) (bool, error) {
	n, err := s.coll.EstimatedDocumentCount(ctx)
	if err != nil {
		return false, fmt.Errorf("count documents: %v: %w", err, internalerr.ErrStoreUnavailable)
	}
	return n > 0, nil
}

// InsertArticles issues one bulk insert and returns the acknowledged
// document count.
func (s *mongoStore) InsertArticles(ctx context.Context, batch []store.Article) (int, error) {
	docs := make([]interface{}, len(batch))
	for i, a := range batch {
		docs[i] = a
	}
	res, err := s.coll.InsertMany(ctx, docs)
	if res != nil && err != nil {
		return len(res.InsertedIDs), fmt.Errorf("insert many: %v: %w", err, internalerr.ErrStoreUnavailable)
	}
	if err != nil {
		return 0, fmt.Errorf("insert many: %v: %w", err, internalerr.ErrStoreUnavailable)
	}
	return len(res.InsertedIDs), nil
}

// EachContent streams content for the matching media type through a
// projected cursor, one document at a time.
func (s *mongoStore) EachContent(ctx context.Context, mediaType string, fn func(string) error) error {
	filter := bson.D{{Key: "$expr", Value: bson.D{
		{Key: "$eq", Value: bson.A{
			bson.D{{Key: "$toLower", Value: "$media_type"}},
			strings.ToLower(mediaType),
		}},
	}}}
	opts := options.Find().SetProjection(bson.D{{Key: "content", Value: 1}})

	cur, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return fmt.Errorf("find by media type: %v: %w", err, internalerr.ErrStoreUnavailable)
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var doc struct {
			Content string `bson:"content"`
		}
		if err := cur.Decode(&doc); err != nil {
			return err
		}
		if err := fn(doc.Content); err != nil {
			return err
		}
	}
	if err := cur.Err(); err != nil {
		return fmt.Errorf("content cursor: %v: %w", err, internalerr.ErrStoreUnavailable)
	}
	return nil
}

// CountByTypeOnDay groups counts by lowercased media type for one
// calendar day. published_at is a real BSON date, normalized at the
// ingestion boundary, so no type sniffing is needed here.
func (s *mongoStore) CountByTypeOnDay(ctx context.Context, day string) (map[string]int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$project", Value: bson.D{
			{Key: "mediaTypeLower", Value: bson.D{{Key: "$toLower", Value: "$media_type"}}},
			{Key: "dateOnly", Value: bson.D{{Key: "$dateToString", Value: bson.D{
				{Key: "format", Value: "%Y-%m-%d"},
				{Key: "date", Value: "$published_at"},
			}}}},
		}}},
		{{Key: "$match", Value: bson.D{{Key: "dateOnly", Value: day}}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$mediaTypeLower"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}

	cur, err := s.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("count by day: %v: %w", err, internalerr.ErrStoreUnavailable)
	}
	defer cur.Close(ctx)

	counts := make(map[string]int64)
	for cur.Next(ctx) {
		var row struct {
			MediaType string `bson:"_id"`
			Count     int64  `bson:"count"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, err
		}
		counts[row.MediaType] = row.Count
	}
	return counts, cur.Err()
}

// SourceCountsByYear groups by source for one calendar year, ordered
// count descending then source ascending.
func (s *mongoStore) SourceCountsByYear(ctx context.Context, year int) ([]store.SourceCount, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "$expr", Value: bson.D{
			{Key: "$eq", Value: bson.A{
				bson.D{{Key: "$year", Value: "$published_at"}},
				year,
			}},
		}}}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$source"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$sort", Value: bson.D{
			{Key: "count", Value: -1},
			{Key: "_id", Value: 1},
		}}},
	}

	cur, err := s.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("count by source: %v: %w", err, internalerr.ErrStoreUnavailable)
	}
	defer cur.Close(ctx)

	var counts []store.SourceCount
	for cur.Next(ctx) {
		var row struct {
			Source string `bson:"_id"`
			Count  int64  `bson:"count"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, err
		}
		counts = append(counts, store.SourceCount{Source: row.Source, Count: row.Count})
	}
	return counts, cur.Err()
}

// ArticlesBySourceKey returns matching articles, most recent first.
// The key is matched as a plain field value; sanitization upstream
// guarantees it is lowercase alphanumerics only.
func (s *mongoStore) ArticlesBySourceKey(ctx context.Context, key string) ([]store.Article, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "published_at", Value: -1},
		{Key: "title", Value: 1},
	})

	cur, err := s.coll.Find(ctx, bson.D{{Key: "source_key", Value: key}}, opts)
	if err != nil {
		return nil, fmt.Errorf("find by source: %v: %w", err, internalerr.ErrStoreUnavailable)
	}
	defer cur.Close(ctx)

	var out []store.Article
	for cur.Next(ctx) {
		var a store.Article
		if err := cur.Decode(&a); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, cur.Err()
}
