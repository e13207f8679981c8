package bookingRepo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
)

// ExecuteTransaction runs fn inside a MongoDB session transaction. Any
// error returned by fn aborts the transaction, leaving prior state
// unchanged.
func (r *MongoBookingRepo) ExecuteTransaction(ctx context.Context, fn func(sessCtx mongo.SessionContext) error) error {
	client := r.bookingColl.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := fn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		return err
	}
	return nil
}
