package fakeswapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/holonet/internal/domain"
)

func newTestServer(t *testing.T, opts ...Option) (*Server, *httptest.Server) {
	t.Helper()
	s, err := New(nil, opts...)
	require.NoError(t, err)
	srv := httptest.NewServer(s)
	t.Cleanup(srv.Close)
	return s, srv
}

func getJSON(t *testing.T, url string, dest any) int {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
	return resp.StatusCode
}

func TestDefaultCatalog(t *testing.T) {
	c, err := DefaultCatalog()
	require.NoError(t, err)
	for _, k := range domain.Kinds {
		assert.Positive(t, c.Count(k), k)
	}
	assert.Equal(t, 14, c.Count(domain.KindPeople))
}

func TestListPaging(t *testing.T) {
	_, srv := newTestServer(t)

	var p1 domain.Page[domain.Person]
	require.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/api/people/?page=1", &p1))
	assert.Equal(t, 14, p1.Count)
	assert.Len(t, p1.Results, 10)
	require.NotNil(t, p1.Next)
	assert.Equal(t, srv.URL+"/api/people/?page=2", *p1.Next)
	assert.Nil(t, p1.Previous)
	assert.Equal(t, "Luke Skywalker", p1.Results[0].Name)
	assert.Equal(t, srv.URL+"/api/people/1/", p1.Results[0].URL)
	assert.Equal(t, srv.URL+"/api/planets/1/", p1.Results[0].Homeworld)

	var p2 domain.Page[domain.Person]
	require.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/api/people/?page=2", &p2))
	assert.Len(t, p2.Results, 4)
	assert.Nil(t, p2.Next)
	require.NotNil(t, p2.Previous)

	var nf map[string]string
	assert.Equal(t, http.StatusNotFound, getJSON(t, srv.URL+"/api/people/?page=3", &nf))
	assert.Equal(t, "Not found.", nf["detail"])
}

func TestListSearch(t *testing.T) {
	_, srv := newTestServer(t)

	var p domain.Page[domain.Person]
	require.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/api/people/?search=SKY", &p))
	assert.Equal(t, 2, p.Count)
	assert.Equal(t, "Luke Skywalker", p.Results[0].Name)
	assert.Equal(t, "Anakin Skywalker", p.Results[1].Name)

	var ships domain.Page[domain.Starship]
	require.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/api/starships/?search=yt-1300", &ships))
	require.Len(t, ships.Results, 1)
	assert.Equal(t, "Millennium Falcon", ships.Results[0].Name)
	assert.Equal(t, "75", ships.Results[0].MGLT)
}

func TestSmallPageSize(t *testing.T) {
	_, srv := newTestServer(t, WithPageSize(3))

	var p domain.Page[domain.Film]
	require.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/api/films/?page=2&search=the", &p))
	assert.Equal(t, 5, p.Count)
	require.Len(t, p.Results, 2)
	assert.Nil(t, p.Next)
	require.NotNil(t, p.Previous)
	assert.Equal(t, srv.URL+"/api/films/?page=1&search=the", *p.Previous)
}

func TestItem(t *testing.T) {
	s, srv := newTestServer(t)

	var film domain.Film
	require.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/api/films/1/", &film))
	assert.Equal(t, "A New Hope", film.Title)
	assert.Equal(t, 4, film.EpisodeID)
	assert.Contains(t, film.Characters, srv.URL+"/api/people/1/")
	assert.NotEmpty(t, film.Created)

	var species domain.Species
	require.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/api/species/2/", &species))
	assert.Empty(t, species.Links(), "droids have no homeworld")

	var nf map[string]string
	assert.Equal(t, http.StatusNotFound, getJSON(t, srv.URL+"/api/films/99/", &nf))
	assert.Equal(t, http.StatusNotFound, getJSON(t, srv.URL+"/api/droids/", &nf))

	assert.Equal(t, 2, s.Calls(domain.KindFilms))
	assert.Equal(t, 1, s.Calls(domain.KindSpecies))
}

func TestFailWith(t *testing.T) {
	s, srv := newTestServer(t)
	s.FailWith(domain.KindPlanets, http.StatusServiceUnavailable)

	var body map[string]string
	assert.Equal(t, http.StatusServiceUnavailable, getJSON(t, srv.URL+"/api/planets/", &body))
	assert.Equal(t, "Service Unavailable", body["detail"])

	s.FailWith(domain.KindPlanets, 0)
	var p domain.Page[domain.Planet]
	assert.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/api/planets/", &p))
}

func TestRequestIDEcho(t *testing.T) {
	_, srv := newTestServer(t)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/", nil)
	require.NoError(t, err)
	req.Header.Set("X-Request-ID", "abc-123")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "abc-123", resp.Header.Get("X-Request-ID"))

	var root map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&root))
	assert.Equal(t, srv.URL+"/api/vehicles/", root["vehicles"])
}

func TestLoadCatalogRejectsBadInput(t *testing.T) {
	_, err := LoadCatalog([]byte("droids:\n  - id: 1\n"))
	assert.ErrorIs(t, err, domain.ErrUnknownKind)

	_, err = LoadCatalog([]byte("films:\n  - title: x\n"))
	assert.ErrorIs(t, err, domain.ErrInvalidID)
}
