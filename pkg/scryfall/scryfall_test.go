package scryfall // nolint:testpackage

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSearchCommandersPaginates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != commanderQuery {
			t.Errorf("expected query %q got %q", commanderQuery, got)
		}

		switch r.URL.Query().Get("page") {
		case "1":
			fmt.Fprint(w, `{"data":[{"id":"id-1","name":"Atraxa, Praetors' Voice"}],"has_more":true}`)
		case "2":
			fmt.Fprint(w, `{"data":[{"id":"id-2","name":"Edgar Markov"}],"has_more":false}`)
		default:
			t.Errorf("unexpected page %q", r.URL.Query().Get("page"))
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	api := New()
	api.base = server.URL

	cards, err := api.SearchCommanders(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	if len(cards) != 2 {
		t.Fatalf("expected 2 cards got %d", len(cards))
	}
	if cards[0].Name != "Atraxa, Praetors' Voice" || cards[1].ID != "id-2" {
		t.Errorf("unexpected cards: %+v", cards)
	}
}

func TestSearchCommandersHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	api := New()
	api.base = server.URL

	if _, err := api.SearchCommanders(context.Background()); err == nil {
		t.Fatal("expected an error on HTTP 500")
	}
}
