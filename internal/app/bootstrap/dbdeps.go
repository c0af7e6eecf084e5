// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"github.com/bwmarrin/discordgo"
	"go.mongodb.org/mongo-driver/mongo"
)

// DBDeps holds database/back-end dependencies for the app.
type DBDeps struct {
	MongoClient   *mongo.Client
	MongoDatabase *mongo.Database

	// Discord is the gateway session whose state cache backs the
	// guild snapshot. Connected in ConnectDB, opened in Startup.
	Discord *discordgo.Session
}
