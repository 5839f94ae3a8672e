package repository

import (
	"context"
	"fmt"
	"time"

	"farewatch-service/internal/domain/entity"
	"farewatch-service/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRouteRepository implements RouteRepository
type MongoRouteRepository struct {
	routes       *mongo.Collection
	observations *mongo.Collection
}

// NewMongoRouteRepository creates a new route repository
func NewMongoRouteRepository(db *mongo.Database) repository.RouteRepository {
	routes := db.Collection("routes")
	observations := db.Collection("price_observations")

	ctx := context.Background()
	activeIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "active", Value: 1}, {Key: "createdAt", Value: 1}},
	}
	routes.Indexes().CreateOne(ctx, activeIndex)

	obsIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "routeId", Value: 1}, {Key: "timestamp", Value: 1}},
	}
	observations.Indexes().CreateOne(ctx, obsIndex)

	return &MongoRouteRepository{
		routes:       routes,
		observations: observations,
	}
}

// ListActiveRoutes returns all active routes ordered by creation time.
// The result is the snapshot a monitoring cycle iterates over.
func (r *MongoRouteRepository) ListActiveRoutes(ctx context.Context) ([]*entity.Route, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": 1})
	cursor, err := r.routes.Find(ctx, bson.M{"active": true}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var routes []*entity.Route
	if err := cursor.All(ctx, &routes); err != nil {
		return nil, err
	}
	return routes, nil
}

// Create inserts a new route. The id is assigned here and never reused.
func (r *MongoRouteRepository) Create(ctx context.Context, route *entity.Route) error {
	now := time.Now()
	if route.ID == "" {
		route.ID = fmt.Sprintf("%s_%s_%d", route.Origin, route.Destination, now.UnixMilli())
	}
	route.CreatedAt = now
	route.UpdatedAt = now

	_, err := r.routes.InsertOne(ctx, route)
	return err
}

// FindByID finds a route by id
func (r *MongoRouteRepository) FindByID(ctx context.Context, id string) (*entity.Route, error) {
	var route entity.Route
	err := r.routes.FindOne(ctx, bson.M{"_id": id}).Decode(&route)
	if err != nil {
		return nil, err
	}
	return &route, nil
}

// UpdateLastPrice records the latest observed price and check time for a
// route (last-write-wins)
func (r *MongoRouteRepository) UpdateLastPrice(ctx context.Context, routeID string, price float64) error {
	now := time.Now()
	_, err := r.routes.UpdateOne(
		ctx,
		bson.M{"_id": routeID},
		bson.M{"$set": bson.M{
			"lastPrice": price,
			"lastCheck": now,
			"updatedAt": now,
		}},
	)
	return err
}

// WritePriceObservation appends one price sample to the route's history
func (r *MongoRouteRepository) WritePriceObservation(ctx context.Context, routeID string, price float64, at time.Time) error {
	observation := entity.PriceObservation{
		ID:        primitive.NewObjectID().Hex(),
		RouteID:   routeID,
		Price:     price,
		Timestamp: at,
	}
	_, err := r.observations.InsertOne(ctx, observation)
	return err
}

// GetHistory returns a route's price samples since the given time, oldest first
func (r *MongoRouteRepository) GetHistory(ctx context.Context, routeID string, since time.Time) ([]*entity.PriceObservation, error) {
	opts := options.Find().SetSort(bson.M{"timestamp": 1})
	filter := bson.M{
		"routeId":   routeID,
		"timestamp": bson.M{"$gte": since},
	}
	cursor, err := r.observations.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var history []*entity.PriceObservation
	if err := cursor.All(ctx, &history); err != nil {
		return nil, err
	}
	return history, nil
}

// Delete removes a route and all of its price history
func (r *MongoRouteRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.routes.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return err
	}
	_, err := r.observations.DeleteMany(ctx, bson.M{"routeId": id})
	return err
}
