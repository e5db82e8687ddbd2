package apollo

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchPerson(t *testing.T) {
	t.Run("match found", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/people/match", r.URL.Path)
			assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

			var req map[string]string
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "Jane", req["first_name"])

			json.NewEncoder(w).Encode(map[string]any{
				"person": map[string]any{
					"email":      "jane@globex.com",
					"confidence": 85,
				},
			})
		}))
		defer server.Close()

		client := NewClient(server.URL)
		out, err := client.MatchPerson(context.Background(), MatchInput{
			APIKey:    "test-key",
			FirstName: "Jane",
			LastName:  "Doe",
			Company:   "Globex",
		})

		assert.NoError(t, err)
		assert.True(t, out.Found)
		assert.Equal(t, "jane@globex.com", out.Email)
		assert.Equal(t, 85, out.Confidence)
	})

	t.Run("no match", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]any{"person": nil})
		}))
		defer server.Close()

		out, err := NewClient(server.URL).MatchPerson(context.Background(), MatchInput{APIKey: "test-key"})
		assert.NoError(t, err)
		assert.False(t, out.Found)
		assert.Empty(t, out.Email)
	})

	t.Run("rate limited", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer server.Close()

		_, err := NewClient(server.URL).MatchPerson(context.Background(), MatchInput{APIKey: "test-key"})
		assert.ErrorIs(t, err, ErrRateLimited)
	})

	t.Run("server error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("upstream exploded"))
		}))
		defer server.Close()

		_, err := NewClient(server.URL).MatchPerson(context.Background(), MatchInput{APIKey: "test-key"})

		var apiErr *APIError
		assert.True(t, errors.As(err, &apiErr))
		assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
		assert.Equal(t, "upstream exploded", apiErr.Body)
	})
}

func TestSendEmail(t *testing.T) {
	t.Run("accepted", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/email/send", r.URL.Path)

			var req map[string]string
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "jane@globex.com", req["to"])
			assert.Equal(t, "Hello", req["subject"])

			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		err := NewClient(server.URL).SendEmail(context.Background(), SendEmailInput{
			APIKey:  "test-key",
			To:      "jane@globex.com",
			Subject: "Hello",
			Body:    "Hi there",
		})
		assert.NoError(t, err)
	})

	t.Run("rate limited", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer server.Close()

		err := NewClient(server.URL).SendEmail(context.Background(), SendEmailInput{APIKey: "test-key"})
		assert.ErrorIs(t, err, ErrRateLimited)
	})

	t.Run("rejected", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte("invalid recipient"))
		}))
		defer server.Close()

		err := NewClient(server.URL).SendEmail(context.Background(), SendEmailInput{APIKey: "test-key"})

		var apiErr *APIError
		assert.True(t, errors.As(err, &apiErr))
		assert.Equal(t, "invalid recipient", apiErr.Body)
	})
}
