package database

import (
	"context"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	AnalysisRunsCollection     = "analysis_runs"
	WindowAggregatesCollection = "window_aggregates"
	TripCountsCollection       = "trip_counts"
)

func createIndexes() {
	createRunsIndexes()
	createResultIndexes()
}

func createRunsIndexes() {
	runsCollection := GetCollection(AnalysisRunsCollection)
	runsIndex := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "runidentifier", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{
				{Key: "startdate", Value: 1},
				{Key: "enddate", Value: 1},
			},
		},
	}

	opts := options.CreateIndexes()
	_, err := runsCollection.Indexes().CreateMany(context.Background(), runsIndex, opts)
	if err != nil {
		log.Error().Err(err).Msg("Creating Index")
	}
}

func createResultIndexes() {
	for _, collectionName := range []string{WindowAggregatesCollection, TripCountsCollection} {
		collection := GetCollection(collectionName)
		_, err := collection.Indexes().CreateMany(context.Background(), []mongo.IndexModel{
			{
				Keys:    bson.D{{Key: "primaryidentifier", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
			{
				Keys: bson.D{{Key: "runidentifier", Value: 1}},
			},
		}, options.CreateIndexes())
		if err != nil {
			log.Error().Err(err).Str("collection", collectionName).Msg("Creating Index")
		}
	}
}
