package helper

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/gosimple/slug"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UsernameBase turns a display name into a lowercase handle without separators,
// falling back to the local part of the email.
func UsernameBase(displayName, email string) string {
	base := strings.ReplaceAll(slug.Make(displayName), "-", "")
	if base == "" {
		local, _, _ := strings.Cut(email, "@")
		base = strings.ReplaceAll(slug.Make(local), "-", "")
	}
	if base == "" {
		base = "user"
	}
	if len(base) > 24 {
		base = base[:24]
	}
	return base
}

// GenerateUsername appends four random digits to UsernameBase.
func GenerateUsername(displayName, email string) string {
	return fmt.Sprintf("%s%d", UsernameBase(displayName, email), 1000+rand.Intn(9000))
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ParseObjectID reports false for anything that is not a 24-char hex id.
func ParseObjectID(hex string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return id, true
}
