package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appmatches "github.com/preston-bernstein/sportconnect-service/internal/app/matches"
	domainmatches "github.com/preston-bernstein/sportconnect-service/internal/domain/matches"
	"github.com/preston-bernstein/sportconnect-service/internal/domain/players"
	"github.com/preston-bernstein/sportconnect-service/internal/domain/rankings"
	"github.com/preston-bernstein/sportconnect-service/internal/membership"
	"github.com/preston-bernstein/sportconnect-service/internal/store"
	"github.com/preston-bernstein/sportconnect-service/internal/testutil"
)

type stubService struct {
	user    players.Player
	matches []domainmatches.Match
	users   []players.Player
	ranks   []rankings.Ranking
	result  membership.Result
	err     error

	gotCreate  appmatches.CreateMatchRequest
	gotMatchID string
	gotUserID  string
}

func (s *stubService) CurrentUser(ctx context.Context) (players.Player, error) {
	return s.user, s.err
}

func (s *stubService) ListMatches(ctx context.Context) ([]domainmatches.Match, error) {
	return s.matches, s.err
}

func (s *stubService) GetMatch(ctx context.Context, id string) (domainmatches.Match, error) {
	s.gotMatchID = id
	if s.err != nil {
		return domainmatches.Match{}, s.err
	}
	for _, m := range s.matches {
		if m.ID == id {
			return m, nil
		}
	}
	return domainmatches.Match{}, store.ErrMatchNotFound
}

func (s *stubService) ListUsers(ctx context.Context) ([]players.Player, error) {
	return s.users, s.err
}

func (s *stubService) Rankings(ctx context.Context) ([]rankings.Ranking, error) {
	return s.ranks, s.err
}

func (s *stubService) CreateMatch(ctx context.Context, req appmatches.CreateMatchRequest) (domainmatches.Match, error) {
	s.gotCreate = req
	if s.err != nil {
		return domainmatches.Match{}, s.err
	}
	return domainmatches.Match{ID: "new-id", Title: req.Title, Status: domainmatches.StatusOpen}, nil
}

func (s *stubService) ToggleMembership(ctx context.Context, matchID, userID string) (membership.Result, error) {
	s.gotMatchID, s.gotUserID = matchID, userID
	return s.result, s.err
}

func newMembershipRequest(matchID, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/matches/"+matchID+"/membership", strings.NewReader(body))
	req.SetPathValue("id", matchID)
	return req
}

func newMatchRequest(matchID string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/matches/"+matchID, nil)
	req.SetPathValue("id", matchID)
	return req
}

func TestHealth(t *testing.T) {
	h := NewHandler(&stubService{}, nil, nil)

	rr := testutil.Serve(http.HandlerFunc(h.Health), http.MethodGet, "/health", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	var resp map[string]string
	testutil.DecodeJSON(t, rr, &resp)
	assert.Equal(t, "ok", resp["status"])
}

func TestHealthShuttingDownReturnsServiceUnavailable(t *testing.T) {
	h := NewHandler(&stubService{}, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	ctx, cancel := context.WithCancel(req.Context())
	cancel()
	req = req.WithContext(ctx)
	rr := testutil.ServeRequest(http.HandlerFunc(h.Health), req)

	testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)
	var resp map[string]string
	testutil.DecodeJSON(t, rr, &resp)
	assert.Equal(t, "shutting down", resp["error"])
}

func TestReadyReflectsStoreState(t *testing.T) {
	ready := false
	h := NewHandler(&stubService{}, nil, func() bool { return ready })

	rr := testutil.Serve(http.HandlerFunc(h.Ready), http.MethodGet, "/ready", nil)
	testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)

	ready = true
	rr = testutil.Serve(http.HandlerFunc(h.Ready), http.MethodGet, "/ready", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	rr = testutil.Serve(http.HandlerFunc(NewHandler(&stubService{}, nil, nil).Ready), http.MethodGet, "/ready", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
}

func TestMe(t *testing.T) {
	h := NewHandler(&stubService{user: players.Player{ID: "u1", Name: "Alessandro Rossi"}}, nil, nil)

	rr := testutil.Serve(http.HandlerFunc(h.Me), http.MethodGet, "/me", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	var resp players.Player
	testutil.DecodeJSON(t, rr, &resp)
	assert.Equal(t, "u1", resp.ID)
}

func TestMeUnauthorized(t *testing.T) {
	h := NewHandler(&stubService{err: appmatches.ErrUnauthorized}, nil, nil)

	rr := testutil.Serve(http.HandlerFunc(h.Me), http.MethodGet, "/me", nil)
	testutil.AssertStatus(t, rr, http.StatusUnauthorized)

	var resp errorBody
	testutil.DecodeJSON(t, rr, &resp)
	assert.Equal(t, CodeUnauthorized, resp.Code)
}

func TestListEndpoints(t *testing.T) {
	svc := &stubService{
		matches: []domainmatches.Match{testutil.SampleMatch("m1", 10, "u1", "u2"), testutil.SampleMatch("m2", 4, "u2")},
		users:   []players.Player{testutil.SamplePlayer("u1")},
		ranks:   []rankings.Ranking{{Rank: 1, Player: testutil.SamplePlayer("u1")}},
	}
	h := NewHandler(svc, nil, nil)

	rr := testutil.Serve(http.HandlerFunc(h.ListMatches), http.MethodGet, "/matches", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	var ms []domainmatches.Match
	testutil.DecodeJSON(t, rr, &ms)
	require.Len(t, ms, 2)
	assert.Equal(t, "m1", ms[0].ID)
	assert.Len(t, ms[0].Players, 2)

	rr = testutil.Serve(http.HandlerFunc(h.ListUsers), http.MethodGet, "/users", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	var us []players.Player
	testutil.DecodeJSON(t, rr, &us)
	assert.Len(t, us, 1)

	rr = testutil.Serve(http.HandlerFunc(h.Rankings), http.MethodGet, "/rankings", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	var rs []rankings.Ranking
	testutil.DecodeJSON(t, rr, &rs)
	require.Len(t, rs, 1)
	assert.Equal(t, 1, rs[0].Rank)
}

func TestListEndpointsMapErrors(t *testing.T) {
	h := NewHandler(&stubService{err: appmatches.ErrUnavailable}, nil, nil)

	for _, fn := range []http.HandlerFunc{h.ListMatches, h.ListUsers, h.Rankings} {
		rr := testutil.Serve(fn, http.MethodGet, "/", nil)
		testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)
	}
}

func TestGetMatch(t *testing.T) {
	svc := &stubService{matches: []domainmatches.Match{testutil.SampleMatch("m2", 4, "u2")}}
	h := NewHandler(svc, nil, nil)

	rr := testutil.ServeRequest(http.HandlerFunc(h.GetMatch), newMatchRequest("m2"))
	testutil.AssertStatus(t, rr, http.StatusOK)

	var resp domainmatches.Match
	testutil.DecodeJSON(t, rr, &resp)
	assert.Equal(t, "m2", resp.ID)
	assert.Equal(t, 4, resp.MaxPlayers)
	assert.Equal(t, "m2", svc.gotMatchID)
}

func TestGetMatchErrors(t *testing.T) {
	h := NewHandler(&stubService{}, nil, nil)

	rr := testutil.ServeRequest(http.HandlerFunc(h.GetMatch), newMatchRequest("ghost"))
	testutil.AssertStatus(t, rr, http.StatusNotFound)
	var resp errorBody
	testutil.DecodeJSON(t, rr, &resp)
	assert.Equal(t, CodeMatchNotFound, resp.Code)

	rr = testutil.ServeRequest(http.HandlerFunc(h.GetMatch), newMatchRequest(" "))
	testutil.AssertStatus(t, rr, http.StatusBadRequest)
}

func TestCreateMatch(t *testing.T) {
	svc := &stubService{}
	h := NewHandler(svc, nil, nil)

	body := `{"sport":"Padel","title":"Doubles","location":"Roma","maxPlayers":4,"organizerId":"u2"}`
	rr := testutil.Serve(http.HandlerFunc(h.CreateMatch), http.MethodPost, "/matches", strings.NewReader(body))
	testutil.AssertStatus(t, rr, http.StatusCreated)

	var resp domainmatches.Match
	testutil.DecodeJSON(t, rr, &resp)
	assert.Equal(t, "new-id", resp.ID)
	assert.Equal(t, "Doubles", resp.Title)

	assert.Equal(t, domainmatches.SportPadel, svc.gotCreate.Sport)
	assert.Equal(t, 4, svc.gotCreate.MaxPlayers)
	assert.Equal(t, "u2", svc.gotCreate.OrganizerID)
}

func TestCreateMatchRejectsMalformedBody(t *testing.T) {
	h := NewHandler(&stubService{}, nil, nil)

	for _, body := range []string{`{`, `{"title":"x","unknown":1}`, `{"title":"a"}{"title":"b"}`} {
		rr := testutil.Serve(http.HandlerFunc(h.CreateMatch), http.MethodPost, "/matches", strings.NewReader(body))
		testutil.AssertStatus(t, rr, http.StatusBadRequest)
	}
}

func TestCreateMatchValidationErrorListsFields(t *testing.T) {
	vErr := &appmatches.ValidationError{Problems: []appmatches.FieldError{{Field: "location", Reason: "is required"}}}
	h := NewHandler(&stubService{err: vErr}, nil, nil)

	rr := testutil.Serve(http.HandlerFunc(h.CreateMatch), http.MethodPost, "/matches", strings.NewReader(`{"title":"x"}`))
	testutil.AssertStatus(t, rr, http.StatusBadRequest)

	var resp errorBody
	testutil.DecodeJSON(t, rr, &resp)
	assert.Equal(t, CodeValidation, resp.Code)
	require.Len(t, resp.Fields, 1)
	assert.Equal(t, "location", resp.Fields[0].Field)
}

func TestToggleMembership(t *testing.T) {
	svc := &stubService{result: membership.Result{
		Match:  domainmatches.Match{ID: "m2", CurrentPlayers: 2},
		Action: membership.ActionJoined,
	}}
	h := NewHandler(svc, nil, nil)

	rr := testutil.ServeRequest(http.HandlerFunc(h.ToggleMembership), newMembershipRequest("m2", `{"userId":"u1"}`))
	testutil.AssertStatus(t, rr, http.StatusOK)

	var resp membership.Result
	testutil.DecodeJSON(t, rr, &resp)
	assert.Equal(t, membership.ActionJoined, resp.Action)
	assert.Equal(t, 2, resp.Match.CurrentPlayers)
	assert.Equal(t, "m2", svc.gotMatchID)
	assert.Equal(t, "u1", svc.gotUserID)
}

func TestToggleMembershipBadInput(t *testing.T) {
	h := NewHandler(&stubService{}, nil, nil)

	rr := testutil.ServeRequest(http.HandlerFunc(h.ToggleMembership), newMembershipRequest("m1", `{"userId":"  "}`))
	testutil.AssertStatus(t, rr, http.StatusBadRequest)

	rr = testutil.ServeRequest(http.HandlerFunc(h.ToggleMembership), newMembershipRequest("m1", `not json`))
	testutil.AssertStatus(t, rr, http.StatusBadRequest)

	req := httptest.NewRequest(http.MethodPost, "/matches//membership", strings.NewReader(`{"userId":"u1"}`))
	rr = testutil.ServeRequest(http.HandlerFunc(h.ToggleMembership), req)
	testutil.AssertStatus(t, rr, http.StatusBadRequest)
}

func TestToggleMembershipErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"match missing", store.ErrMatchNotFound, http.StatusNotFound, CodeMatchNotFound},
		{"user missing", store.ErrUserNotFound, http.StatusNotFound, CodeUserNotFound},
		{"full", store.ErrMatchFull, http.StatusConflict, CodeMatchFull},
		{"storage", &store.StorageError{Op: "save", Backend: "file", Err: errors.New("disk full")}, http.StatusServiceUnavailable, CodeUnavailable},
		{"not initialized", &store.StorageError{Op: "init", Backend: "file", Err: store.ErrNotInitialized}, http.StatusServiceUnavailable, CodeUnavailable},
		{"simulated", appmatches.ErrUnavailable, http.StatusServiceUnavailable, CodeUnavailable},
		{"canceled", context.Canceled, http.StatusServiceUnavailable, CodeUnavailable},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&stubService{err: tt.err}, nil, nil)
			rr := testutil.ServeRequest(http.HandlerFunc(h.ToggleMembership), newMembershipRequest("m1", `{"userId":"u1"}`))
			testutil.AssertStatus(t, rr, tt.status)

			var resp errorBody
			testutil.DecodeJSON(t, rr, &resp)
			assert.Equal(t, tt.code, resp.Code)
			assert.NotContains(t, resp.Error, "disk full", "storage details leaked to client")
		})
	}
}
