package services

import (
	"context"
	"net/http"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ichramsyah/bebasblog-backend/helper"
)

func newProfileService(f *postFixture) *ProfileService {
	return NewProfileService(f.store.Users, f.store.Posts)
}

func TestPublicProfileAggregates(t *testing.T) {
	f := newPostFixture(t)
	profiles := newProfileService(f)
	alice := f.user(t, "alice")
	f.user(t, "bob")

	p1 := f.post(t, alice, "one")
	p2 := f.post(t, alice, "two")
	likers := func(n int) []primitive.ObjectID {
		ids := make([]primitive.ObjectID, n)
		for i := range ids {
			ids[i] = primitive.NewObjectID()
		}
		return ids
	}
	f.store.Posts.SetLikes(p1.ID, likers(3))
	f.store.Posts.SetLikes(p2.ID, likers(5))

	profile, err := profiles.PublicProfile(context.Background(), "alice")
	if err != nil {
		t.Fatalf("public profile: %v", err)
	}
	if profile.PostCount != 2 || profile.TotalLikes != 8 {
		t.Fatalf("postCount = %d, totalLikes = %d", profile.PostCount, profile.TotalLikes)
	}

	empty, err := profiles.PublicProfile(context.Background(), "bob")
	if err != nil {
		t.Fatalf("public profile: %v", err)
	}
	if empty.PostCount != 0 || empty.TotalLikes != 0 {
		t.Fatalf("expected zero stats, got %+v", empty)
	}

	_, err = profiles.PublicProfile(context.Background(), "nobody")
	wantStatus(t, err, http.StatusNotFound)
}

func TestPostsByUsername(t *testing.T) {
	f := newPostFixture(t)
	profiles := newProfileService(f)
	alice := f.user(t, "alice")
	bob := f.user(t, "bob")
	f.post(t, alice, "a1")
	f.post(t, bob, "b1")
	latest := f.post(t, alice, "a2")

	posts, err := profiles.PostsByUsername(context.Background(), "alice")
	if err != nil {
		t.Fatalf("posts: %v", err)
	}
	if len(posts) != 2 || posts[0].ID != latest.ID {
		t.Fatalf("unexpected posts %+v", posts)
	}
	for _, p := range posts {
		if p.User != alice.ID {
			t.Fatalf("foreign post returned: %+v", p)
		}
	}

	_, err = profiles.PostsByUsername(context.Background(), "nobody")
	wantStatus(t, err, http.StatusNotFound)
}

func TestUpdateOwnProfile(t *testing.T) {
	f := newPostFixture(t)
	profiles := newProfileService(f)
	alice := f.user(t, "alice")
	f.user(t, "bob")

	_, err := profiles.UpdateOwn(context.Background(), alice, UpdateProfileInput{Username: "bob"})
	wantStatus(t, err, http.StatusConflict)

	_, err = profiles.UpdateOwn(context.Background(), alice, UpdateProfileInput{Username: "b a d"})
	wantStatus(t, err, http.StatusBadRequest)

	same, err := profiles.UpdateOwn(context.Background(), alice, UpdateProfileInput{Username: "alice", Bio: "hi there"})
	if err != nil {
		t.Fatalf("keeping own username: %v", err)
	}
	if same.Username != "alice" || same.Bio != "hi there" {
		t.Fatalf("unexpected profile %+v", same)
	}

	renamed, err := profiles.UpdateOwn(context.Background(), alice, UpdateProfileInput{Username: "alice_2", ProfilePictureURL: "http://pic/a.png"})
	if err != nil {
		t.Fatalf("rename: %v", err)
	}
	if renamed.Username != "alice_2" || renamed.Bio != "hi there" || renamed.ProfilePictureURL != "http://pic/a.png" {
		t.Fatalf("unexpected profile %+v", renamed)
	}

	own, err := profiles.GetOwn(context.Background(), alice)
	if err != nil || own.Username != "alice_2" {
		t.Fatalf("get own: %v %+v", err, own)
	}
}

func TestChangePassword(t *testing.T) {
	f := newPostFixture(t)
	profiles := newProfileService(f)
	alice := f.user(t, "alice")

	err := profiles.ChangePassword(context.Background(), alice, ChangePasswordInput{CurrentPassword: "nope", NewPassword: "newpassword"})
	wantStatus(t, err, http.StatusUnauthorized)

	err = profiles.ChangePassword(context.Background(), alice, ChangePasswordInput{CurrentPassword: "password1", NewPassword: "123"})
	wantStatus(t, err, http.StatusBadRequest)

	if err := profiles.ChangePassword(context.Background(), alice, ChangePasswordInput{CurrentPassword: "password1", NewPassword: "newpassword"}); err != nil {
		t.Fatalf("change password: %v", err)
	}

	raw, _ := f.store.RawUser(alice.ID)
	if !helper.VerifyPassword(raw.Password, "newpassword") {
		t.Fatalf("new password not stored")
	}
	_, err = f.auth.Login(context.Background(), LoginInput{Email: "alice@example.com", Password: "password1"})
	wantStatus(t, err, http.StatusUnauthorized)
	if _, err := f.auth.Login(context.Background(), LoginInput{Email: "alice@example.com", Password: "newpassword"}); err != nil {
		t.Fatalf("login with new password: %v", err)
	}
}
