package database

import (
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrNotFound          = errors.New("record not found")
	ErrDuplicateEmail    = errors.New("email already exists")
	ErrDuplicateUsername = errors.New("username already exists")
	ErrAlreadyLiked      = errors.New("post already liked")
	ErrNotLiked          = errors.New("post not liked")
)

const (
	usernameIndex = "username_unique"
	emailIndex    = "email_unique"
)

// translateWriteError maps unique index violations on users to sentinel errors.
func translateWriteError(err error) error {
	if err == nil || !mongo.IsDuplicateKeyError(err) {
		return err
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, usernameIndex), strings.Contains(msg, "username"):
		return ErrDuplicateUsername
	case strings.Contains(msg, emailIndex), strings.Contains(msg, "email"):
		return ErrDuplicateEmail
	}
	return err
}

func notFound(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	return err
}
