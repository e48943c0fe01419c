package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"crm-backend/internal/models"
)

// lookupExecutiveStages joins the grouped owner email back to the users
// collection so responses carry the executive's display name.
func lookupExecutiveStages() mongo.Pipeline {
	return mongo.Pipeline{
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         "users",
			"localField":   "_id",
			"foreignField": "email",
			"as":           "executiveInfo",
		}}},
		bson.D{{Key: "$unwind", Value: "$executiveInfo"}},
	}
}

// GetLeadsByExecutive reports total leads per owning executive.
func GetLeadsByExecutive(db *mongo.Database) gin.HandlerFunc {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.M{
			"_id":        "$executiveEmail",
			"totalLeads": bson.M{"$sum": 1},
		}}},
	}
	pipeline = append(pipeline, lookupExecutiveStages()...)
	pipeline = append(pipeline, bson.D{{Key: "$project", Value: bson.M{
		"_id":            0,
		"executiveEmail": "$_id",
		"executiveName":  "$executiveInfo.name",
		"totalLeads":     1,
	}}})

	return aggregate(db, "leads", pipeline)
}

// GetFollowUpsCompleted reports completed follow-ups per executive.
func GetFollowUpsCompleted(db *mongo.Database) gin.HandlerFunc {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"status": models.FollowUpStatusCompleted}}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":                "$executiveEmail",
			"completedFollowups": bson.M{"$sum": 1},
		}}},
	}
	pipeline = append(pipeline, lookupExecutiveStages()...)
	pipeline = append(pipeline, bson.D{{Key: "$project", Value: bson.M{
		"_id":                0,
		"executiveEmail":     "$_id",
		"executiveName":      "$executiveInfo.name",
		"completedFollowups": 1,
	}}})

	return aggregate(db, "followup", pipeline)
}

// GetClosureRates reports the closed/total lead percentage per executive.
func GetClosureRates(db *mongo.Database) gin.HandlerFunc {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.M{
			"_id":        "$executiveEmail",
			"totalLeads": bson.M{"$sum": 1},
			"closedLeads": bson.M{"$sum": bson.M{
				"$cond": bson.A{bson.M{"$eq": bson.A{"$status", models.LeadStatusClosed}}, 1, 0},
			}},
		}}},
		bson.D{{Key: "$addFields", Value: bson.M{
			"closureRate": bson.M{"$cond": bson.A{
				bson.M{"$eq": bson.A{"$totalLeads", 0}},
				0,
				bson.M{"$multiply": bson.A{
					bson.M{"$divide": bson.A{"$closedLeads", "$totalLeads"}},
					100,
				}},
			}},
		}}},
	}
	pipeline = append(pipeline, lookupExecutiveStages()...)
	pipeline = append(pipeline, bson.D{{Key: "$project", Value: bson.M{
		"_id":            0,
		"executiveEmail": "$_id",
		"executiveName":  "$executiveInfo.name",
		"totalLeads":     1,
		"closedLeads":    1,
		"closureRate":    1,
	}}})

	return aggregate(db, "leads", pipeline)
}

// GetLeadConversionTrends reports the lead count per status.
func GetLeadConversionTrends(db *mongo.Database) gin.HandlerFunc {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.M{
			"_id":   "$status",
			"count": bson.M{"$sum": 1},
		}}},
	}

	return aggregate(db, "leads", pipeline)
}

func aggregate(db *mongo.Database, collection string, pipeline mongo.Pipeline) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		cursor, err := db.Collection(collection).Aggregate(ctx, pipeline)
		if err != nil {
			log.Println("[PERFORMANCE] [ERROR] aggregation failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		defer cursor.Close(ctx)

		results := make([]bson.M, 0)
		if err := cursor.All(ctx, &results); err != nil {
			log.Println("[PERFORMANCE] [ERROR] aggregation decode failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		c.JSON(http.StatusOK, results)
	}
}
