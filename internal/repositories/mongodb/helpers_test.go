package mongodb

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestParseObjectID(t *testing.T) {
	oid := primitive.NewObjectID()

	parsed, ok := parseObjectID(oid.Hex())
	assert.True(t, ok)
	assert.Equal(t, oid, parsed)

	_, ok = parseObjectID("1716891234567")
	assert.False(t, ok)

	_, ok = parseObjectID("")
	assert.False(t, ok)
}

func TestSubjectFilter(t *testing.T) {
	filter := subjectFilter("C++ (Advanced)")

	regex, ok := filter["subject"].(primitive.Regex)
	assert.True(t, ok)
	assert.Equal(t, "i", regex.Options)
	// Metacharacters in the subject must match literally.
	assert.Equal(t, `^C\+\+ \(Advanced\)$`, regex.Pattern)
}

func TestStamp(t *testing.T) {
	var createdAt, updatedAt time.Time
	stamp(&createdAt, &updatedAt)
	assert.False(t, createdAt.IsZero())
	assert.False(t, updatedAt.IsZero())

	original := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	createdAt, updatedAt = original, original
	stamp(&createdAt, &updatedAt)
	assert.Equal(t, original, createdAt)
	assert.Equal(t, original, updatedAt)
}
