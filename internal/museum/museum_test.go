package museum

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"museum-gallery/internal/artwork"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

func newClient(t *testing.T, h http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c := NewClient(Config{APIURL: srv.URL, UsersURL: srv.URL, Timeout: 2 * time.Second, Tokens: staticToken("tok")})
	t.Cleanup(c.Wait)
	return c
}

func artworksJSON(museum string, n int) []artwork.Artwork {
	out := make([]artwork.Artwork, n)
	for i := range out {
		out[i] = artwork.Artwork{ID: museum + string(rune('a'+i)), Title: "t", Museum: museum}
	}
	return out
}

func writeSearch(w http.ResponseWriter, arts []artwork.Artwork) {
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success":   true,
		"data":      map[string]any{"artworks": arts, "total": len(arts), "museums": []string{}},
		"timestamp": "2024-05-01T10:00:00Z",
	})
}

func TestSearchGalleryMETFirstThenHarvardRemainder(t *testing.T) {
	var mu sync.Mutex
	var limits = map[string]string{}
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/composition/search" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("query") != "sunflowers" || q.Get("sortBy") != "relevance" {
			t.Errorf("unexpected query %v", q)
		}
		museum := q.Get("museums")
		mu.Lock()
		limits[museum] = q.Get("limit")
		mu.Unlock()
		if museum == "met" {
			writeSearch(w, artworksJSON("met", 5))
			return
		}
		writeSearch(w, artworksJSON("harvard", 7))
	}))

	got, err := c.SearchGallery(context.Background(), "  sunflowers ", []string{"harvard", "met"})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != 12 || got[0].Museum != "met" || got[5].Museum != "harvard" {
		t.Fatalf("unexpected order: %+v", got)
	}
	if limits["met"] != "8" || limits["harvard"] != "7" {
		t.Fatalf("unexpected limits %v", limits)
	}
}

func TestSearchGallerySkipsHarvardWhenFull(t *testing.T) {
	var calls atomic.Int32
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		writeSearch(w, artworksJSON("met", 12))
	}))
	got, err := c.SearchGallery(context.Background(), "x", []string{"met", "harvard"})
	if err != nil || len(got) != 12 {
		t.Fatalf("got %d artworks, err %v", len(got), err)
	}
	if calls.Load() != 1 {
		t.Fatalf("expected a single request, got %d", calls.Load())
	}
}

func TestSearchGalleryValidation(t *testing.T) {
	c := NewClient(Config{})
	if _, err := c.SearchGallery(context.Background(), " ", []string{"met"}); !errors.Is(err, ErrEmptyQuery) {
		t.Fatalf("expected ErrEmptyQuery, got %v", err)
	}
	if _, err := c.SearchGallery(context.Background(), "x", nil); !errors.Is(err, ErrNoMuseums) {
		t.Fatalf("expected ErrNoMuseums, got %v", err)
	}
}

func TestSearchUnsuccessful(t *testing.T) {
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":false,"message":"upstream down"}`))
	}))
	if _, err := c.Search(context.Background(), Params{Query: "x"}); err == nil {
		t.Fatal("expected error for success=false")
	}
}

func TestArtworkDetail(t *testing.T) {
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/composition/artworks/436535" || r.URL.Query().Get("museum") != "met" {
			t.Errorf("unexpected request %s", r.URL)
		}
		_, _ = w.Write([]byte(`{"success":true,"data":{"id":436535,"title":"Wheat Field","museum":"met"}}`))
	}))
	a, err := c.Artwork(context.Background(), "436535", "met")
	if err != nil || a.ID != "436535" || a.Title != "Wheat Field" {
		t.Fatalf("artwork = %+v, %v", a, err)
	}
}

func TestFavoritesShapes(t *testing.T) {
	tests := []struct {
		name string
		body string
		want []string
	}{
		{"nested", `{"data":{"favorites":[{"artworkId":"1","title":"A","museum":"met"}]}}`, []string{"1"}},
		{"bare array", `[{"id":"2","title":"B","museum":"harvard"}]`, []string{"2"}},
		{"favorites key", `{"favorites":["met_3"]}`, []string{"met_3"}},
		{"unknown", `{"other":true}`, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Header.Get("Authorization") != "Bearer tok" {
					t.Errorf("missing bearer token")
				}
				_, _ = w.Write([]byte(tt.body))
			}))
			got, err := c.Favorites(context.Background(), "u1")
			if err != nil {
				t.Fatalf("favorites: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %+v", got)
			}
			for i, id := range tt.want {
				if got[i].ID != id {
					t.Errorf("item %d id = %q, want %q", i, got[i].ID, id)
				}
			}
		})
	}
}

func TestFavoritesCacheServesAndRefreshes(t *testing.T) {
	var calls atomic.Int32
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := calls.Add(1)
		if n == 1 {
			_, _ = w.Write([]byte(`[{"id":"1","title":"A","museum":"met"}]`))
			return
		}
		_, _ = w.Write([]byte(`[{"id":"1","title":"A","museum":"met"},{"id":"2","title":"B","museum":"met"}]`))
	}))
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	first, err := c.Favorites(context.Background(), "u1")
	if err != nil || len(first) != 1 {
		t.Fatalf("first = %+v, %v", first, err)
	}
	first[0].Title = "mutated"

	now = now.Add(5 * time.Second)
	cached, err := c.Favorites(context.Background(), "u1")
	if err != nil || len(cached) != 1 || cached[0].Title != "A" {
		t.Fatalf("expected untouched cached copy, got %+v, %v", cached, err)
	}
	c.Wait()
	if calls.Load() != 2 {
		t.Fatalf("expected a background refresh, got %d calls", calls.Load())
	}
	refreshed, _ := c.Favorites(context.Background(), "u1")
	c.Wait()
	if len(refreshed) != 2 {
		t.Fatalf("expected refreshed list, got %+v", refreshed)
	}
}

func TestFavoritesRateLimitCooldown(t *testing.T) {
	var calls atomic.Int32
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Retry-After", "5")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	got, err := c.Favorites(context.Background(), "u1")
	if err != nil || len(got) != 0 || got == nil {
		t.Fatalf("expected empty non-nil list without error, got %+v, %v", got, err)
	}
	now = now.Add(4 * time.Second)
	if _, err := c.Favorites(context.Background(), "u1"); err != nil {
		t.Fatalf("cooldown call: %v", err)
	}
	if calls.Load() != 1 {
		t.Fatalf("expected no request during cooldown, got %d", calls.Load())
	}
	now = now.Add(2 * time.Second)
	_, _ = c.Favorites(context.Background(), "u1")
	if calls.Load() != 2 {
		t.Fatalf("expected a request after cooldown, got %d", calls.Load())
	}
}

func TestStatusErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		header string
		body   string
		check  func(error) bool
	}{
		{"unauthorized", 401, "", "", func(err error) bool { return errors.Is(err, ErrUnauthorized) }},
		{"retry in body", 429, "", `{"retryAfter":"12"}`, func(err error) bool {
			var rl *RateLimitError
			return errors.As(err, &rl) && rl.RetryAfter == 12*time.Second
		}},
		{"retry default", 429, "", `{}`, func(err error) bool {
			var rl *RateLimitError
			return errors.As(err, &rl) && rl.RetryAfter == DefaultCooldown
		}},
		{"server error", 500, "", `{"message":"boom"}`, func(err error) bool {
			var se *StatusError
			return errors.As(err, &se) && se.Status == 500 && se.Message == "boom"
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			err := c.do(context.Background(), "GET", c.favoritesURL("u1"), nil, nil)
			if !tt.check(err) {
				t.Fatalf("unexpected error %v", err)
			}
		})
	}
}

func TestAddAndRemoveFavorite(t *testing.T) {
	var mu sync.Mutex
	var bodies []map[string]any
	var methods []string
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users/u1/favorites" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		data, _ := io.ReadAll(r.Body)
		var body map[string]any
		_ = json.Unmarshal(data, &body)
		mu.Lock()
		methods = append(methods, r.Method)
		bodies = append(bodies, body)
		mu.Unlock()
		if r.Method == "GET" {
			_, _ = w.Write([]byte(`[]`))
		}
	}))
	a := artwork.Artwork{ID: "9", Title: "Lilies", Museum: "harvard", PrimaryImageSmall: "http://img", Medium: "Oil", Period: "Edo"}

	if _, err := c.Favorites(context.Background(), "u1"); err != nil {
		t.Fatalf("prime cache: %v", err)
	}
	if err := c.AddFavorite(context.Background(), "u1", a); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := c.AddFavorite(context.Background(), "u1", a); err != nil {
		t.Fatalf("add again: %v", err)
	}
	list, _ := c.Favorites(context.Background(), "u1")
	c.Wait()
	if len(list) != 1 {
		t.Fatalf("expected cache without duplicates, got %+v", list)
	}

	if err := c.RemoveFavorite(context.Background(), "u1", artwork.Artwork{ID: "9", Museum: "harvard"}); err != nil {
		t.Fatalf("remove: %v", err)
	}
	list, _ = c.Favorites(context.Background(), "u1")
	c.Wait()
	if len(list) != 0 {
		t.Fatalf("expected removal from cache, got %+v", list)
	}

	mu.Lock()
	defer mu.Unlock()
	post := bodies[1]
	if methods[1] != "POST" || post["artworkId"] != "9" || post["imageUrl"] != "http://img" ||
		post["description"] != "Oil" || post["year"] != "Edo" {
		t.Fatalf("unexpected add payload %v", post)
	}
	found := false
	for i, m := range methods {
		if m == "DELETE" {
			found = true
			if bodies[i]["artworkId"] != "9" {
				t.Fatalf("unexpected delete body %v", bodies[i])
			}
		}
	}
	if !found {
		t.Fatal("no DELETE request sent")
	}
}

func TestFavoritesSameIDAcrossMuseums(t *testing.T) {
	var mu sync.Mutex
	stored := []map[string]string{{"artworkId": "1", "title": "Met one", "museum": "met"}}
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		switch r.Method {
		case "POST":
			stored = append(stored, body)
		case "DELETE":
			kept := stored[:0]
			for _, f := range stored {
				if f["artworkId"] != body["artworkId"] || f["museum"] != body["museum"] {
					kept = append(kept, f)
				}
			}
			stored = kept
		}
		_ = json.NewEncoder(w).Encode(stored)
	}))
	ctx := context.Background()
	if _, err := c.Favorites(ctx, "u1"); err != nil {
		t.Fatalf("prime cache: %v", err)
	}
	harvard := artwork.Artwork{ID: "1", Title: "Harvard one", Museum: "harvard"}
	if err := c.AddFavorite(ctx, "u1", harvard); err != nil {
		t.Fatalf("add: %v", err)
	}
	list, _ := c.Favorites(ctx, "u1")
	c.Wait()
	if len(list) != 2 {
		t.Fatalf("expected met and harvard id 1 in favorites, got %+v", list)
	}

	if err := c.RemoveFavorite(ctx, "u1", artwork.Artwork{ID: "1", Museum: "met"}); err != nil {
		t.Fatalf("remove: %v", err)
	}
	list, _ = c.Favorites(ctx, "u1")
	c.Wait()
	if len(list) != 1 || list[0].Museum != "harvard" {
		t.Fatalf("expected only harvard id 1 to remain, got %+v", list)
	}
}

func TestSearchHistory(t *testing.T) {
	var posted atomic.Value
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users/u1/search-history" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Method == "POST" {
			var body map[string]string
			_ = json.NewDecoder(r.Body).Decode(&body)
			posted.Store(body["query"])
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte(`{"data":{"history":["monet",{"term":"rembrandt"},{"data":{"query":"hokusai"}},"",{"query":""}]}}`))
	}))
	got := c.SearchHistory(context.Background(), "u1")
	want := []string{"monet", "rembrandt", "hokusai"}
	if len(got) != len(want) {
		t.Fatalf("history = %q", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry %d = %q, want %q", i, got[i], want[i])
		}
	}
	c.AddSearchHistory(context.Background(), "u1", "vermeer")
	if posted.Load() != "vermeer" {
		t.Fatalf("history write not sent")
	}
}

func TestSearchHistoryErrorIsEmpty(t *testing.T) {
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	if got := c.SearchHistory(context.Background(), "u1"); got == nil || len(got) != 0 {
		t.Fatalf("expected empty history, got %v", got)
	}
}

func TestRetryAfterParsing(t *testing.T) {
	tests := map[string]time.Duration{"": 0, "7": 7 * time.Second, "10s": 10 * time.Second, "abc": 0, "-3": 0}
	for in, want := range tests {
		if got := retryAfter(in); got != want {
			t.Errorf("retryAfter(%q) = %v, want %v", in, got, want)
		}
	}
}
