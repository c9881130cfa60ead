// Package mongodb implements the document-store backing on MongoDB
// collections. Records are keyed by store-generated ObjectIDs; every
// id crossing the package boundary is normalized to its hex string.
package mongodb

import (
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	postsCollection     = "posts"
	questionsCollection = "questions"
	quizzesCollection   = "quizzes"
)

// parseObjectID converts a caller-supplied string id. The boolean is
// false for anything that is not a well-formed ObjectID hex; callers
// treat that the same as an absent record instead of erroring.
func parseObjectID(id string) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return oid, true
}

// subjectFilter builds a case-insensitive exact match on the subject
// field, mirroring the file backing's strings.EqualFold comparison.
func subjectFilter(subject string) bson.M {
	return bson.M{"subject": primitive.Regex{
		Pattern: "^" + regexp.QuoteMeta(subject) + "$",
		Options: "i",
	}}
}

// stamp fills zero timestamps with the current time so migrated records
// keep their original ones.
func stamp(createdAt, updatedAt *time.Time) {
	now := time.Now().UTC()
	if createdAt.IsZero() {
		*createdAt = now
	}
	if updatedAt.IsZero() {
		*updatedAt = now
	}
}
