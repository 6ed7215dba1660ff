package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/updates-app/updates-backend/internal/core/domain"
)

const (
	assignmentsCollection = "church_admin_assignments"
	churchesCollection    = "churches"
)

// MongoAssignmentRepository persists church-admin assignments. It holds the
// client as well as the database because Assign runs a multi-document
// transaction across the assignments and users collections.
type MongoAssignmentRepository struct {
	client      *mongo.Client
	assignments *mongo.Collection
	churches    *mongo.Collection
	users       *mongo.Collection
}

func NewAssignmentRepository(client *mongo.Client, db *mongo.Database) *MongoAssignmentRepository {
	return &MongoAssignmentRepository{
		client:      client,
		assignments: db.Collection(assignmentsCollection),
		churches:    db.Collection(churchesCollection),
		users:       db.Collection(usersCollection),
	}
}

type mongoAssignment struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    primitive.ObjectID `bson:"user_id"`
	ChurchID  primitive.ObjectID `bson:"church_id"`
	CreatedAt int64              `bson:"created_at"`
}

// EnsureIndexes creates the compound uniqueness index that makes Assign
// idempotent per (user, church) pair.
func (r *MongoAssignmentRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.assignments.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "church_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("ensure assignment indexes: %w", err)
	}
	return nil
}

// ListByUser returns the user's assignments decorated with church names via
// a $lookup against the churches collection.
func (r *MongoAssignmentRepository) ListByUser(ctx context.Context, userID string) ([]domain.ChurchAssignment, error) {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"user_id": uid}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         churchesCollection,
			"localField":   "church_id",
			"foreignField": "_id",
			"as":           "church",
		}}},
		{{Key: "$unwind", Value: bson.M{
			"path":                       "$church",
			"preserveNullAndEmptyArrays": true,
		}}},
	}

	cursor, err := r.assignments.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		mongoAssignment `bson:",inline"`
		Church          struct {
			Name string `bson:"name"`
		} `bson:"church"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decode assignments: %w", err)
	}

	out := make([]domain.ChurchAssignment, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.ChurchAssignment{
			UserID:     row.UserID.Hex(),
			ChurchID:   row.ChurchID.Hex(),
			ChurchName: row.Church.Name,
			CreatedAt:  unixToTime(row.CreatedAt),
		})
	}
	return out, nil
}

// Assign inserts the assignment and flips the user's enrollment status to
// assigned inside one transaction, so readers never see the row without
// the status (or the status without the row).
func (r *MongoAssignmentRepository) Assign(ctx context.Context, userID, churchID string) error {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return domain.ErrUserNotFound
	}
	cid, err := primitive.ObjectIDFromHex(churchID)
	if err != nil {
		return domain.ErrChurchNotFound
	}

	if err := r.churches.FindOne(ctx, bson.M{"_id": cid}).Err(); err != nil {
		if err == mongo.ErrNoDocuments {
			return domain.ErrChurchNotFound
		}
		return fmt.Errorf("find church: %w", err)
	}

	session, err := r.client.StartSession()
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		// Upsert keeps repeated assignments of the same pair idempotent.
		_, err := r.assignments.UpdateOne(sc,
			bson.M{"user_id": uid, "church_id": cid},
			bson.M{"$setOnInsert": bson.M{
				"user_id":    uid,
				"church_id":  cid,
				"created_at": time.Now().UTC().Unix(),
			}},
			options.Update().SetUpsert(true),
		)
		if err != nil {
			return nil, fmt.Errorf("insert assignment: %w", err)
		}

		res, err := r.users.UpdateByID(sc, uid, bson.M{"$set": bson.M{
			"enrollment_status": string(domain.EnrollmentAssigned),
			"updated_at":        time.Now().UTC().Unix(),
		}})
		if err != nil {
			return nil, fmt.Errorf("update enrollment status: %w", err)
		}
		if res.MatchedCount == 0 {
			return nil, domain.ErrUserNotFound
		}
		return nil, nil
	})
	return err
}

// Unassign deletes the assignment only. Enrollment status is deliberately
// left untouched, even for the user's last assignment.
func (r *MongoAssignmentRepository) Unassign(ctx context.Context, userID, churchID string) error {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return domain.ErrAssignmentNotFound
	}
	cid, err := primitive.ObjectIDFromHex(churchID)
	if err != nil {
		return domain.ErrAssignmentNotFound
	}

	res, err := r.assignments.DeleteOne(ctx, bson.M{"user_id": uid, "church_id": cid})
	if err != nil {
		return fmt.Errorf("delete assignment: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrAssignmentNotFound
	}
	return nil
}
