package metadata

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeClock struct {
	now    time.Time
	sleeps []time.Duration
}

func (f *fakeClock) Now() time.Time { return f.now }

func (f *fakeClock) Sleep(_ context.Context, d time.Duration) error {
	f.sleeps = append(f.sleeps, d)
	f.now = f.now.Add(d)
	return nil
}

const animePayload = `{"data":{
	"mal_id": 1,
	"title": "Cowboy Bebop",
	"title_english": "Cowboy Bebop",
	"type": "TV",
	"images": {"jpg": {"image_url": "https://cdn/small.jpg", "large_image_url": "https://cdn/large.jpg"}},
	"synopsis": "Space bounty hunters.",
	"source": "Original",
	"status": "Finished Airing",
	"rating": "R - 17+",
	"duration": "24 min per ep",
	"year": 1998,
	"episodes": 26,
	"score": 8.75,
	"popularity": 43,
	"scored_by": 900000,
	"members": 1800000,
	"favorites": 80000,
	"aired": {"from": "1998-04-03T00:00:00+00:00", "to": "1999-04-24T00:00:00+00:00"},
	"genres": [{"name": "Action"}, {"name": "Sci-Fi"}, {"name": null}],
	"themes": [{"name": "Space"}],
	"demographics": [],
	"studios": [{"name": "Sunrise"}],
	"producers": [{"name": "Bandai Visual"}],
	"licensors": [{"name": "Funimation"}]
}}`

const mangaPayload = `{"data":{
	"mal_id": 2,
	"title": "Berserk",
	"type": "Manga",
	"chapters": null,
	"published": {"from": "1989-08-25T00:00:00+00:00", "to": null},
	"authors": [{"name": "Miura, Kentarou"}],
	"demographics": [{"name": "Seinen"}]
}}`

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *fakeClock, *int32) {
	t.Helper()
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	clock := &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	cfg := Config{BaseURL: srv.URL, MinIntervalMillis: 1200, TimeoutSeconds: 2, MaxAttempts: 3, BackoffSeconds: 5}
	c := NewClient(cfg, zap.NewNop(), WithClock(clock.Now, clock.Sleep))
	return c, clock, &hits
}

func TestFetch_Anime(t *testing.T) {
	c, _, hits := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/anime/1", r.URL.Path)
		_, _ = w.Write([]byte(animePayload))
	})

	m, err := c.Fetch(context.Background(), 1, EndpointAnime)
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(hits))

	assert.Equal(t, "Cowboy Bebop", m.Title)
	assert.Equal(t, "TV", m.MediaType)
	assert.Equal(t, "https://cdn/large.jpg", m.ImageURL)
	assert.Equal(t, []string{"Action", "Sci-Fi"}, m.Genres)
	assert.Equal(t, []string{"Space"}, m.Themes)
	assert.Nil(t, m.Demographics)
	assert.Equal(t, []string{"Sunrise"}, m.Studios)
	assert.Equal(t, []string{"Bandai Visual"}, m.Producers)
	require.NotNil(t, m.TotalUnits)
	assert.Equal(t, 26, *m.TotalUnits)
	require.NotNil(t, m.Score)
	assert.InDelta(t, 8.75, *m.Score, 0.001)
	require.NotNil(t, m.Year)
	assert.Equal(t, 1998, *m.Year)
	require.NotNil(t, m.AiredTo)
	assert.Equal(t, 1999, m.AiredTo.Year())
}

func TestFetch_MangaWithMissingFields(t *testing.T) {
	c, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/manga/2", r.URL.Path)
		_, _ = w.Write([]byte(mangaPayload))
	})

	m, err := c.Fetch(context.Background(), 2, EndpointManga)
	require.NoError(t, err)

	assert.Equal(t, "Berserk", m.Title)
	assert.Empty(t, m.ImageURL)
	assert.Empty(t, m.Synopsis)
	assert.Nil(t, m.TotalUnits)
	assert.Nil(t, m.Score)
	assert.Nil(t, m.AiredTo)
	assert.Equal(t, []string{"Miura, Kentarou"}, m.Producers)
	assert.Equal(t, []string{"Seinen"}, m.Demographics)
	require.NotNil(t, m.Year, "year falls back to the publication start")
	assert.Equal(t, 1989, *m.Year)
}

func TestFetch_NotFound(t *testing.T) {
	t.Run("Status404", func(t *testing.T) {
		c, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})
		_, err := c.Fetch(context.Background(), 9, EndpointAnime)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("NullData", func(t *testing.T) {
		c, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"data":null}`))
		})
		_, err := c.Fetch(context.Background(), 9, EndpointAnime)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestFetch_ServerErrorFailsImmediately(t *testing.T) {
	c, clock, hits := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := c.Fetch(context.Background(), 3, EndpointAnime)

	var fe *FetchError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, http.StatusInternalServerError, fe.StatusCode)
	assert.False(t, fe.RateLimited)
	assert.Equal(t, 1, fe.Attempts)
	assert.Equal(t, int32(1), atomic.LoadInt32(hits))
	assert.Empty(t, clock.sleeps)
}

func TestFetch_RateLimitedGivesUpAfterThreeAttempts(t *testing.T) {
	c, clock, hits := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	m, err := c.Fetch(context.Background(), 4, EndpointAnime)
	assert.Nil(t, m)

	var fe *FetchError
	require.True(t, errors.As(err, &fe))
	assert.True(t, fe.RateLimited)
	assert.Equal(t, 3, fe.Attempts)
	assert.Equal(t, int32(3), atomic.LoadInt32(hits))
	assert.Equal(t, []time.Duration{5 * time.Second, 10 * time.Second, 15 * time.Second}, clock.sleeps)
}

func TestFetch_RateLimitedThenSucceeds(t *testing.T) {
	var calls int32
	c, clock, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte(animePayload))
	})

	m, err := c.Fetch(context.Background(), 1, EndpointAnime)
	require.NoError(t, err)
	assert.Equal(t, "Cowboy Bebop", m.Title)
	assert.Equal(t, []time.Duration{5 * time.Second}, clock.sleeps)
}

func TestFetch_SpacesConsecutiveCalls(t *testing.T) {
	c, clock, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, _ = c.Fetch(context.Background(), 1, EndpointAnime)
	_, _ = c.Fetch(context.Background(), 2, EndpointAnime)
	_, _ = c.Fetch(context.Background(), 3, EndpointAnime)

	require.Len(t, clock.sleeps, 2)
	for _, d := range clock.sleeps {
		assert.InDelta(t, float64(1200*time.Millisecond), float64(d), float64(time.Millisecond))
	}
}

func TestFetch_DecodeAndNetworkFailures(t *testing.T) {
	t.Run("MalformedJSON", func(t *testing.T) {
		c, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"data": [`))
		})
		_, err := c.Fetch(context.Background(), 1, EndpointAnime)
		var fe *FetchError
		require.True(t, errors.As(err, &fe))
		assert.Zero(t, fe.StatusCode)
	})

	t.Run("Unreachable", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		srv.Close()
		clock := &fakeClock{now: time.Now()}
		c := NewClient(Config{BaseURL: srv.URL}, zap.NewNop(), WithClock(clock.Now, clock.Sleep))

		_, err := c.Fetch(context.Background(), 1, EndpointAnime)
		var fe *FetchError
		require.True(t, errors.As(err, &fe))
		assert.Equal(t, 1, fe.Attempts)
		assert.False(t, errors.Is(err, ErrNotFound))
	})
}

func TestSleepContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, sleepContext(ctx, time.Hour), context.Canceled)
	assert.NoError(t, sleepContext(context.Background(), time.Millisecond))
}
