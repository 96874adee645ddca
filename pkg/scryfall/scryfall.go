// Package scryfall is a minimal client for the parts of the Scryfall HTTP
// API we need: enumerating every commander-legal card.
package scryfall

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

const baseURL = "https://api.scryfall.com"

// commanderQuery is the Scryfall search that returns every card that can be
// played as a commander.
const commanderQuery = "legal:commander is:commander"

// API holds the necessary state to communicate with the Scryfall API.
type API struct {
	http    http.Client
	base    string
	limiter *rate.Limiter
}

// New creates a new rate-limited access point to the API.
func New() *API {
	return &API{
		// Scryfall asks for at most 10 requests per second.
		limiter: rate.NewLimiter(10, 1),
		base:    baseURL,
		http: http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Card is the subset of a Scryfall card object we care about.
type Card struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type cardList struct {
	Data    []Card `json:"data"`
	HasMore bool   `json:"has_more"`
}

// SearchCommanders returns every commander-legal card, walking through the
// paginated search results.
func (api *API) SearchCommanders(ctx context.Context) ([]Card, error) {
	var ret []Card

	for page := 1; ; page++ {
		list, err := api.searchPage(ctx, commanderQuery, page)
		if err != nil {
			return nil, err
		}

		ret = append(ret, list.Data...)

		if !list.HasMore {
			return ret, nil
		}
	}
}

func (api *API) searchPage(ctx context.Context, query string, page int) (cardList, error) {
	if err := api.limiter.Wait(ctx); err != nil {
		return cardList{}, err
	}

	q := url.Values{}
	q.Set("q", query)
	q.Set("page", strconv.Itoa(page))

	req, err := http.NewRequestWithContext(
		ctx, http.MethodGet,
		api.base+"/cards/search?"+q.Encode(),
		nil,
	)
	if err != nil {
		return cardList{}, err
	}

	res, err := api.http.Do(req)
	if err != nil {
		return cardList{}, fmt.Errorf("unable to search cards: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return cardList{}, fmt.Errorf("got HTTP %d from card search", res.StatusCode)
	}

	var list cardList
	if err := json.NewDecoder(res.Body).Decode(&list); err != nil {
		return cardList{}, fmt.Errorf("unable to decode card search response: %w", err)
	}

	return list, nil
}
