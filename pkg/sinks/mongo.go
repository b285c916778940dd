package sinks

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/travigo/headways/pkg/config"
	"github.com/travigo/headways/pkg/database"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoSink struct{}

func NewMongoSink(cfg config.MongoDBConfig) (*MongoSink, error) {
	if err := database.ConnectMongoDB(cfg); err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}

	return &MongoSink{}, nil
}

func (s *MongoSink) Name() string {
	return "mongodb"
}

func upsertModel(primaryIdentifier string, document interface{}) (*mongo.UpdateOneModel, error) {
	bsonRep, err := bson.Marshal(bson.M{"$set": document})
	if err != nil {
		return nil, err
	}

	updateModel := mongo.NewUpdateOneModel()
	updateModel.SetFilter(bson.M{"primaryidentifier": primaryIdentifier})
	updateModel.SetUpdate(bsonRep)
	updateModel.SetUpsert(true)

	return updateModel, nil
}

func (s *MongoSink) Publish(ctx context.Context, run *Run) error {
	runsCollection := database.GetCollection(database.AnalysisRunsCollection)
	runUpdate, err := bson.Marshal(bson.M{"$set": bson.M{
		"runidentifier": run.RunIdentifier,
		"generatedat":   run.GeneratedAt,
		"feed":          run.Feed,
		"startdate":     run.StartDate,
		"enddate":       run.EndDate,
		"routes":        run.Routes,
		"trips":         run.Trips,
		"headways":      run.Headways,
		"rejected":      run.Rejected,
	}})
	if err != nil {
		return err
	}

	_, err = runsCollection.UpdateOne(ctx, bson.M{"runidentifier": run.RunIdentifier}, runUpdate, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("store analysis run: %w", err)
	}

	var windowOperations []mongo.WriteModel
	for _, document := range run.WindowAggregates {
		model, err := upsertModel(document.PrimaryIdentifier, document)
		if err != nil {
			return err
		}
		windowOperations = append(windowOperations, model)
	}

	var tripCountOperations []mongo.WriteModel
	for _, document := range run.TripCounts {
		model, err := upsertModel(document.PrimaryIdentifier, document)
		if err != nil {
			return err
		}
		tripCountOperations = append(tripCountOperations, model)
	}

	for collectionName, operations := range map[string][]mongo.WriteModel{
		database.WindowAggregatesCollection: windowOperations,
		database.TripCountsCollection:       tripCountOperations,
	} {
		if len(operations) == 0 {
			continue
		}

		result, err := database.GetCollection(collectionName).BulkWrite(ctx, operations, &options.BulkWriteOptions{})
		if err != nil {
			return fmt.Errorf("bulk write %s: %w", collectionName, err)
		}

		log.Info().
			Str("collection", collectionName).
			Int64("upserted", result.UpsertedCount).
			Int64("modified", result.ModifiedCount).
			Msg("Bulk write complete")
	}

	return nil
}

func (s *MongoSink) Close(ctx context.Context) error {
	return database.Disconnect(ctx)
}
