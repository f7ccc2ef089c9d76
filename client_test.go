package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(&Config{ServerURL: srv.URL, HTTPTimeout: 5}, zerolog.Nop())
}

func TestSessionReturnsNilUserOn401(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))

	user, err := c.Session(context.Background())
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestSessionReturnsUser(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/user/me", r.URL.Path)
		json.NewEncoder(w).Encode(User{ID: "u1", Username: "ada"})
	}))

	user, err := c.Session(context.Background())
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "ada", user.Username)
}

func TestLogin(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/user/login", r.URL.Path)
		var body map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "ada", body["username"])
		assert.Equal(t, "secret", body["password"])
		json.NewEncoder(w).Encode(User{ID: "u1", Username: "ada"})
	}))

	user, err := c.Login(context.Background(), "ada", "secret")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
}

func TestUsers(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/user/all", r.URL.Path)
		json.NewEncoder(w).Encode([]User{{ID: "u1", Username: "ada"}, {ID: "u2", Username: "grace"}})
	}))

	users, err := c.Users(context.Background())
	require.NoError(t, err)
	assert.Len(t, users, 2)
}

func TestUsersSurfacesServerError(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))

	_, err := c.Users(context.Background())
	assert.Error(t, err)
}

func TestCreatePostcardSendsDraftAndIdempotencyKey(t *testing.T) {
	d := NewDraft("owner-1")
	d.SetTitleValue("Hello")
	d.SetTitlePosition(Point{X: 200, Y: 150})
	d.SetDescriptionValue("From the coast")
	d.SetFrame(FrameSpec{Type: FrameLeftRight, Thickness: 4, Color: "#000"})
	d.SetRecipients([]string{"u2"})

	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/postcard", r.URL.Path)
		assert.Equal(t, d.SubmissionID, r.Header.Get("Idempotency-Key"))

		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "owner-1", body["owner"])
		assert.Equal(t, []any{"u2"}, body["recipients"])
		assert.Equal(t, []any{}, body["stickers"])
		assert.Equal(t, []any{}, body["interactiveElements"])

		title := body["title"].(map[string]any)
		assert.Equal(t, "Hello", title["value"])
		assert.Equal(t, float64(200), title["position"].(map[string]any)["x"])
		assert.Equal(t, float64(150), title["position"].(map[string]any)["y"])

		frame := body["frame"].(map[string]any)
		assert.Equal(t, "left-right", frame["type"])
		assert.Equal(t, float64(4), frame["thickness"])

		json.NewEncoder(w).Encode(map[string]string{"_id": "pc-42"})
	}))

	card, err := c.CreatePostcard(context.Background(), d)
	require.NoError(t, err)
	assert.Equal(t, "pc-42", card.ID)
}

func TestCreatePostcardMaps401(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))

	_, err := c.CreatePostcard(context.Background(), NewDraft("owner-1"))
	assert.ErrorIs(t, err, ErrUnauthorized)
}
