package resource

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Kind names a resource collection.
type Kind string

const (
	KindAsset  Kind = "asset"
	KindConfig Kind = "config"
)

// Collection is the storage collection and the URL segment, e.g. "assets".
func (k Kind) Collection() string { return string(k) + "s" }

// Title is the display name used in error messages, e.g. "Asset".
func (k Kind) Title() string {
	if k == "" {
		return ""
	}
	return strings.ToUpper(string(k[:1])) + string(k[1:])
}

// Document is implemented by pointers to every stored resource.
type Document interface {
	Kind() Kind
	ModelKey() string
	ObjectID() primitive.ObjectID
	// Prepare assigns a fresh id, and a creation time when the caller did not supply one.
	Prepare(now time.Time)
}

// Ptr constrains a type parameter to *T where *T is a Document.
type Ptr[T any] interface {
	*T
	Document
}

// Asset holds the texture and price tables for a model.
type Asset struct {
	ID                 primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	ModelID            string             `json:"modelId" bson:"modelId"`
	Textures           map[string]string  `json:"textures" bson:"textures"`
	MaterialTextureMap map[string]string  `json:"materialTextureMap" bson:"materialTextureMap"`
	Prices             map[string]float64 `json:"prices" bson:"prices"`
	CreatedAt          time.Time          `json:"createdAt" bson:"createdAt"`
}

func (a *Asset) Kind() Kind                   { return KindAsset }
func (a *Asset) ModelKey() string             { return a.ModelID }
func (a *Asset) ObjectID() primitive.ObjectID { return a.ID }
func (a *Asset) Prepare(now time.Time)        { prepare(&a.ID, &a.CreatedAt, now) }

// DefaultState is the initial configurator selection for a model.
type DefaultState struct {
	CurrentSize  string  `json:"currentSize" bson:"currentSize"`
	CurrentColor string  `json:"currentColor" bson:"currentColor"`
	CurrentPrice float64 `json:"currentPrice" bson:"currentPrice"`
}

// Config is the configurator setup for a model.
type Config struct {
	ID           primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	ModelID      string             `json:"modelId" bson:"modelId"`
	DefaultState DefaultState       `json:"defaultState" bson:"defaultState"`
	CreatedAt    time.Time          `json:"createdAt" bson:"createdAt"`
}

func (c *Config) Kind() Kind                   { return KindConfig }
func (c *Config) ModelKey() string             { return c.ModelID }
func (c *Config) ObjectID() primitive.ObjectID { return c.ID }
func (c *Config) Prepare(now time.Time)        { prepare(&c.ID, &c.CreatedAt, now) }

// The id is always assigned here, never taken from the request, so ids
// follow insertion order and a create can never address an existing document.
// Timestamps are kept at millisecond precision in UTC, the resolution of a
// BSON datetime, so a document reads back equal on every backend.
func prepare(id *primitive.ObjectID, createdAt *time.Time, now time.Time) {
	*id = primitive.NewObjectIDFromTimestamp(now)
	if createdAt.IsZero() {
		*createdAt = now.UTC().Truncate(time.Millisecond)
	} else {
		*createdAt = createdAt.UTC().Truncate(time.Millisecond)
	}
}
