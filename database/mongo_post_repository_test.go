package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
)

func TestPostFilter(t *testing.T) {
	assert.Equal(t, bson.M{}, PostFilter(""))
	assert.Equal(t, bson.M{"job": "recap"}, PostFilter("recap"))
}

func TestClampLimit(t *testing.T) {
	assert.Equal(t, DefaultPostLimit, ClampLimit(0))
	assert.Equal(t, DefaultPostLimit, ClampLimit(-4))
	assert.Equal(t, 50, ClampLimit(50))
	assert.Equal(t, MaxPostLimit, ClampLimit(10_000))
}
