package mongo

import (
	"context"
	"errors"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/swiftroute/logistics-api/internal/core/domain"
	"github.com/swiftroute/logistics-api/internal/core/ports"
)

const collectionShipments = "shipments"

// activeStatuses are the non-terminal shipment states used for driver
// availability recomputation.
var activeStatuses = []string{
	string(domain.StatusPending),
	string(domain.StatusShipped),
	string(domain.StatusInTransit),
	string(domain.StatusOutForDelivery),
}

// ShipmentRepository persists shipments and performs the joint
// shipment-status + driver-availability writes inside multi-document
// transactions, as the assignment relation must never observe a partially
// applied status change.
type ShipmentRepository struct {
	client *mongo.Client
	col    *mongo.Collection
	users  *mongo.Collection
}

func NewShipmentRepository(client *mongo.Client, db *mongo.Database) *ShipmentRepository {
	return &ShipmentRepository{
		client: client,
		col:    db.Collection(collectionShipments),
		users:  db.Collection(collectionUsers),
	}
}

// Create inserts a new shipment and marks its initial driver on_delivery in
// the same transaction. A duplicate tracking code maps to the domain conflict.
func (r *ShipmentRepository) Create(ctx context.Context, s *domain.Shipment) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.withTx(ctx, func(sc mongo.SessionContext) error {
		if _, err := r.col.InsertOne(sc, s); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return domain.ErrDuplicateTrackingCode
			}
			return err
		}
		if s.DriverID != "" {
			return r.recomputeDriver(sc, s.DriverID)
		}
		return nil
	})
}

func (r *ShipmentRepository) FindByID(ctx context.Context, id string) (*domain.Shipment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var s domain.Shipment
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&s); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrShipmentNotFound
		}
		return nil, err
	}
	return &s, nil
}

// FindByTrackingCode is an exact, case-sensitive lookup.
func (r *ShipmentRepository) FindByTrackingCode(ctx context.Context, code string) (*domain.Shipment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var s domain.Shipment
	if err := r.col.FindOne(ctx, bson.M{"tracking_code": code}).Decode(&s); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrShipmentNotFound
		}
		return nil, err
	}
	return &s, nil
}

// Update replaces the shipment document and recomputes driver availability
// for every driver the write affects, all inside one transaction.
func (r *ShipmentRepository) Update(ctx context.Context, w ports.ShipmentWrite) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.withTx(ctx, func(sc mongo.SessionContext) error {
		res, err := r.col.ReplaceOne(sc, bson.M{"_id": w.Shipment.ID}, w.Shipment)
		if err != nil {
			return err
		}
		if res.MatchedCount == 0 {
			return domain.ErrShipmentNotFound
		}

		if w.CreditDriverID != "" {
			if err := r.creditDelivery(sc, w.CreditDriverID); err != nil {
				return err
			}
		}
		if w.Shipment.DriverID != "" {
			if err := r.recomputeDriver(sc, w.Shipment.DriverID); err != nil {
				return err
			}
		}
		if w.PrevDriverID != "" && w.PrevDriverID != w.Shipment.DriverID {
			if err := r.recomputeDriver(sc, w.PrevDriverID); err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete removes a shipment and frees its driver in the same transaction.
func (r *ShipmentRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.withTx(ctx, func(sc mongo.SessionContext) error {
		var s domain.Shipment
		if err := r.col.FindOne(sc, bson.M{"_id": id}).Decode(&s); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return domain.ErrShipmentNotFound
			}
			return err
		}
		if _, err := r.col.DeleteOne(sc, bson.M{"_id": id}); err != nil {
			return err
		}
		if s.DriverID != "" {
			return r.recomputeDriver(sc, s.DriverID)
		}
		return nil
	})
}

// List returns a page of shipments in insertion order plus the total count.
func (r *ShipmentRepository) List(ctx context.Context, filter ports.ListShipmentsFilter) ([]*domain.Shipment, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.DriverID != "" {
		query["driver_id"] = filter.DriverID
	}
	if filter.Search != "" {
		re := primitive.Regex{Pattern: regexp.QuoteMeta(filter.Search), Options: "i"}
		or := bson.A{
			bson.M{"tracking_code": re},
			bson.M{"origin": re},
			bson.M{"destination": re},
		}
		if len(filter.SearchDriverIDs) > 0 {
			or = append(or, bson.M{"driver_id": bson.M{"$in": filter.SearchDriverIDs}})
		}
		query["$or"] = or
	}
	if !filter.DateFrom.IsZero() || !filter.DateTo.IsZero() {
		updated := bson.M{}
		if !filter.DateFrom.IsZero() {
			updated["$gte"] = filter.DateFrom
		}
		if !filter.DateTo.IsZero() {
			updated["$lte"] = filter.DateTo
		}
		query["updated_at"] = updated
	}

	total, err := r.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	if filter.Page > 0 && filter.Limit > 0 {
		opts.SetSkip(int64((filter.Page - 1) * filter.Limit)).SetLimit(int64(filter.Limit))
	}

	cur, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var items []*domain.Shipment
	if err := cur.All(ctx, &items); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *ShipmentRepository) CountByStatus(ctx context.Context, status domain.ShipmentStatus) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	return r.col.CountDocuments(ctx, bson.M{"status": string(status)})
}

func (r *ShipmentRepository) CountActiveByDriver(ctx context.Context, driverID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	return r.col.CountDocuments(ctx, bson.M{
		"driver_id": driverID,
		"status":    bson.M{"$in": activeStatuses},
	})
}

// EnsureIndexes creates the indexes the repository relies on; the unique
// tracking code index backs the duplicate conflict detection.
func (r *ShipmentRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "tracking_code", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "driver_id", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "updated_at", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

// recomputeDriver derives a driver's operating status from their remaining
// active assignments. The availability relation is derived, never stored as
// independent authoritative state.
func (r *ShipmentRepository) recomputeDriver(sc mongo.SessionContext, driverID string) error {
	oid, err := primitive.ObjectIDFromHex(driverID)
	if err != nil {
		return domain.ErrDriverNotFound
	}

	n, err := r.col.CountDocuments(sc, bson.M{
		"driver_id": driverID,
		"status":    bson.M{"$in": activeStatuses},
	})
	if err != nil {
		return err
	}

	status := domain.DriverActive
	if n > 0 {
		status = domain.DriverOnDelivery
	}
	_, err = r.users.UpdateOne(sc, bson.M{"_id": oid}, bson.M{"$set": bson.M{"status": string(status)}})
	return err
}

func (r *ShipmentRepository) creditDelivery(sc mongo.SessionContext, driverID string) error {
	oid, err := primitive.ObjectIDFromHex(driverID)
	if err != nil {
		return domain.ErrDriverNotFound
	}
	_, err = r.users.UpdateOne(sc, bson.M{"_id": oid},
		bson.M{"$inc": bson.M{"performance.total_deliveries": 1}})
	return err
}

func (r *ShipmentRepository) withTx(ctx context.Context, fn func(sc mongo.SessionContext) error) error {
	sess, err := r.client.StartSession()
	if err != nil {
		return err
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}
