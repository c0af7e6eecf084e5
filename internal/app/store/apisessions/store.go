// internal/app/store/apisessions/store.go
package apisessions

import (
	"context"
	"time"

	"github.com/questboard/questboard/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Lifetime is how long a dashboard login stays valid without a
// refresh rotating it.
const Lifetime = 14 * 24 * time.Hour

// Store manages dashboard login sessions keyed by the Discord access
// token the browser holds as its bearer token.
type Store struct {
	c *mongo.Collection
}

// New creates an API-session Store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("apiSessions")}
}

// EnsureIndexes creates the token lookup index and the TTL index that
// reaps expired sessions.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "token", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("idx_apisessions_token"),
		},
		{
			Keys:    bson.D{{Key: "expires", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0).SetName("idx_apisessions_ttl"),
		},
	}
	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}

// Get returns the session for a bearer token.
func (s *Store) Get(ctx context.Context, token string) (models.APISession, bool, error) {
	var sess models.APISession
	err := s.c.FindOne(ctx, bson.M{"token": token}).Decode(&sess)
	if err == mongo.ErrNoDocuments {
		return models.APISession{}, false, nil
	}
	if err != nil {
		return models.APISession{}, false, err
	}
	return sess, true, nil
}

// Create stores a fresh session for a token bundle, replacing any
// prior session stored under the same access token.
func (s *Store) Create(ctx context.Context, access models.TokenAccess) (models.APISession, error) {
	now := time.Now().UTC()
	sess := models.APISession{
		Token:         access.AccessToken,
		Access:        access,
		LastRefreshed: now.Unix(),
		Expires:       now.Add(Lifetime),
	}
	_, err := s.c.ReplaceOne(ctx,
		bson.M{"token": sess.Token},
		sess,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return models.APISession{}, err
	}
	return sess, nil
}

// Rotate deletes the session stored under oldToken and creates a new
// one for the refreshed token bundle. Used when a Discord refresh
// issues a different access token.
func (s *Store) Rotate(ctx context.Context, oldToken string, access models.TokenAccess) (models.APISession, error) {
	if _, err := s.c.DeleteOne(ctx, bson.M{"token": oldToken}); err != nil {
		return models.APISession{}, err
	}
	return s.Create(ctx, access)
}

// Delete removes a session by token.
func (s *Store) Delete(ctx context.Context, token string) error {
	_, err := s.c.DeleteOne(ctx, bson.M{"token": token})
	return err
}
