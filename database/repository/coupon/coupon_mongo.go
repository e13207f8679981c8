package couponRepo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"motoclub/database"
	"motoclub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoCouponRepo is the MongoDB implementation of CouponRepository.
type MongoCouponRepo struct {
	coll *mongo.Collection
}

func NewMongoCouponRepo() *MongoCouponRepo {
	return &MongoCouponRepo{coll: database.DB().Collection("coupons")}
}

func (r *MongoCouponRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "code", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("coupons_code_unique"),
		},
	})
	if err != nil {
		return fmt.Errorf("coupons indexes: %w", err)
	}
	return nil
}

func (r *MongoCouponRepo) Create(ctx context.Context, c *models.Coupon) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	c.Code = strings.ToUpper(c.Code)
	if _, err := r.coll.InsertOne(ctx, c); err != nil {
		return fmt.Errorf("insert coupon: %w", err)
	}
	return nil
}

func (r *MongoCouponRepo) GetByCode(ctx context.Context, code string) (*models.Coupon, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	var c models.Coupon
	if err := r.coll.FindOne(ctx, bson.M{"code": strings.ToUpper(code)}).Decode(&c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find coupon: %w", err)
	}
	return &c, nil
}

func (r *MongoCouponRepo) Update(ctx context.Context, c *models.Coupon) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	c.UpdatedAt = time.Now()
	res, err := r.coll.ReplaceOne(ctx, bson.M{"id": c.ID}, c)
	if err != nil {
		return fmt.Errorf("update coupon: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoCouponRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("delete coupon: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoCouponRepo) List(ctx context.Context) ([]models.Coupon, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	cur, err := r.coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list coupons: %w", err)
	}
	defer cur.Close(ctx)
	var coupons []models.Coupon
	if err := cur.All(ctx, &coupons); err != nil {
		return nil, fmt.Errorf("decode coupons: %w", err)
	}
	return coupons, nil
}

// Redeem appends the usage entry and bumps used_count in one conditional
// update: the filter carries the used_count < usage_limit predicate, so
// the invariant used_count <= usage_limit cannot be violated by
// concurrent redemptions.
func (r *MongoCouponRepo) Redeem(ctx context.Context, code string, usage models.CouponUsage) error {
	filter := bson.M{
		"code": strings.ToUpper(code),
		"$expr": bson.M{"$or": bson.A{
			bson.M{"$lte": bson.A{"$usage_limit", 0}}, // 0 means unlimited
			bson.M{"$lt": bson.A{"$used_count", "$usage_limit"}},
		}},
	}
	update := bson.M{
		"$inc":  bson.M{"used_count": 1},
		"$push": bson.M{"used_by": usage},
		"$set":  bson.M{"updated_at": time.Now()},
	}
	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("redeem coupon: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrUsageExhausted
	}
	return nil
}
