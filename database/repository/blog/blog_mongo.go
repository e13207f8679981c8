package blogRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"motoclub/database"
	"motoclub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoBlogRepo is the MongoDB implementation of BlogRepository.
type MongoBlogRepo struct {
	coll *mongo.Collection
}

func NewMongoBlogRepo() *MongoBlogRepo {
	return &MongoBlogRepo{coll: database.DB().Collection("blogs")}
}

func (r *MongoBlogRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "slug", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("blogs_slug_unique"),
		},
	})
	if err != nil {
		return fmt.Errorf("blogs indexes: %w", err)
	}
	return nil
}

func (r *MongoBlogRepo) Create(ctx context.Context, b *models.Blog) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if _, err := r.coll.InsertOne(ctx, b); err != nil {
		return fmt.Errorf("insert blog post: %w", err)
	}
	return nil
}

func (r *MongoBlogRepo) GetBySlug(ctx context.Context, slug string) (*models.Blog, error) {
	return r.findOne(ctx, bson.M{"slug": slug})
}

func (r *MongoBlogRepo) GetByID(ctx context.Context, id string) (*models.Blog, error) {
	return r.findOne(ctx, bson.M{"id": id})
}

func (r *MongoBlogRepo) findOne(ctx context.Context, filter bson.M) (*models.Blog, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	var b models.Blog
	if err := r.coll.FindOne(ctx, filter).Decode(&b); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find blog post: %w", err)
	}
	return &b, nil
}

func (r *MongoBlogRepo) Update(ctx context.Context, b *models.Blog) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	b.UpdatedAt = time.Now()
	res, err := r.coll.ReplaceOne(ctx, bson.M{"id": b.ID}, b)
	if err != nil {
		return fmt.Errorf("update blog post: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoBlogRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("delete blog post: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoBlogRepo) List(ctx context.Context, publishedOnly bool) ([]models.Blog, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	filter := bson.M{}
	if publishedOnly {
		filter["published"] = true
	}
	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list blog posts: %w", err)
	}
	defer cur.Close(ctx)
	var posts []models.Blog
	if err := cur.All(ctx, &posts); err != nil {
		return nil, fmt.Errorf("decode blog posts: %w", err)
	}
	return posts, nil
}
