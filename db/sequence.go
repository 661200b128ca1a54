package db

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// NextSequence allocates the next integer id for the named collection from
// the shared counters collection. The $inc upsert is atomic per statement,
// so ids are unique and monotonically increasing per name.
func NextSequence(ctx context.Context, d *mongo.Database, name string) (int64, error) {
	res := d.Collection("counters").FindOneAndUpdate(
		ctx,
		bson.M{"_id": name},
		bson.M{"$inc": bson.M{"seq": int64(1)}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	)
	var out struct {
		Seq int64 `bson:"seq"`
	}
	if err := res.Decode(&out); err != nil {
		return 0, err
	}
	return out.Seq, nil
}
