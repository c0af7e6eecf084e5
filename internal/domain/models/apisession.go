// internal/domain/models/apisession.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TokenAccess is the OAuth token bundle Discord returned for a login.
type TokenAccess struct {
	AccessToken  string `bson:"access_token" json:"access_token"`
	RefreshToken string `bson:"refresh_token" json:"refresh_token"`
	ExpiresIn    int    `bson:"expires_in" json:"expires_in"`
	Scope        string `bson:"scope" json:"scope"`
	TokenType    string `bson:"token_type" json:"token_type"`
}

// APISession is a dashboard login session keyed by the Discord access
// token the browser presents as its bearer token. Sessions expire two
// weeks after creation; refreshing the access token rotates the
// record under the new token value.
type APISession struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	Token         string             `bson:"token" json:"token"`
	Access        TokenAccess        `bson:"access" json:"access"`
	LastRefreshed int64              `bson:"lastRefreshed" json:"lastRefreshed"` // unix seconds
	Expires       time.Time          `bson:"expires" json:"expires"`
}
