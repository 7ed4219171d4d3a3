package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hybridclock/pkg/clock"
	"hybridclock/pkg/msg"
	"hybridclock/pkg/types"

	bclock "github.com/benbjohnson/clock"
	"github.com/google/go-cmp/cmp"
	"github.com/gorilla/mux"
)

// testRouter builds a router serving a clock frozen at T.
func testRouter(t *testing.T, node clock.NodeID, T time.Time) *mux.Router {
	t.Helper()
	mock := bclock.NewMock()
	mock.Set(T)

	cfg := clock.DefaultConfig()
	cfg.Now = mock.Now

	c, err := clock.NewWithConfig(node, cfg)
	if err != nil {
		t.Fatalf("NewWithConfig: %v", err)
	}

	r := mux.NewRouter()
	New(c).Route(r)
	return r
}

func do(t *testing.T, r *mux.Router, method, target string, in *types.Input) (int, types.Response) {
	t.Helper()

	var body bytes.Buffer
	if in != nil {
		if err := json.NewEncoder(&body).Encode(in); err != nil {
			t.Fatalf("encode request: %v", err)
		}
	}

	req := httptest.NewRequest(method, target, &body)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	var res types.Response
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return rec.Code, res
}

func TestEventEndpoint(t *testing.T) {
	T := time.Date(2024, 3, 20, 10, 45, 58, 249000000, time.UTC)
	r := testRouter(t, "node1", T)

	code, res := do(t, r, http.MethodPost, EVENT_ENDPOINT, nil)
	if code != http.StatusOK {
		t.Fatalf("got status %d, wanted 200", code)
	}
	want := types.Response{
		Message:   msg.EventSuccess,
		Timestamp: "2024-03-20T10:45:58.249000Z-0000-node1",
		Node:      "node1",
	}
	if diff := cmp.Diff(res, want); diff != "" {
		t.Errorf("Bad response (-got,+want): %s", diff)
	}

	// The clock is frozen, so a second event bumps only the counter.
	code, res = do(t, r, http.MethodPost, EVENT_ENDPOINT, nil)
	if code != http.StatusOK {
		t.Fatalf("got status %d, wanted 200", code)
	}
	if res.Timestamp != "2024-03-20T10:45:58.249000Z-0001-node1" {
		t.Errorf("second event gave %q", res.Timestamp)
	}
}

func TestSendEndpoint(t *testing.T) {
	T := time.Date(2024, 3, 20, 10, 45, 58, 249000000, time.UTC)
	r := testRouter(t, "node1", T)

	code, res := do(t, r, http.MethodPost, SEND_ENDPOINT, nil)
	if code != http.StatusOK {
		t.Fatalf("got status %d, wanted 200", code)
	}
	if res.Message != msg.SendSuccess {
		t.Errorf("got message %q, wanted %q", res.Message, msg.SendSuccess)
	}
	if res.Timestamp != "2024-03-20T10:45:58.249000Z-0000-node1" {
		t.Errorf("got timestamp %q", res.Timestamp)
	}
}

func TestReceiveEndpoint(t *testing.T) {
	T := time.Date(2024, 3, 20, 10, 45, 58, 249000000, time.UTC)
	r := testRouter(t, "node1", T)

	tests := []struct {
		name      string
		in        *types.Input
		wantCode  int
		wantStamp string
		wantError string
	}{{
		name:      "remote clock ahead",
		in:        &types.Input{Timestamp: "2024-03-20T10:45:59.249000Z-0005-node2"},
		wantCode:  http.StatusOK,
		wantStamp: "2024-03-20T10:45:59.249000Z-0006-node1",
	}, {
		name:      "missing timestamp",
		in:        &types.Input{},
		wantCode:  http.StatusBadRequest,
		wantError: msg.TimestampMissing,
	}, {
		name:      "malformed timestamp",
		in:        &types.Input{Timestamp: "not-a-timestamp"},
		wantCode:  http.StatusBadRequest,
		wantError: msg.BadTimestamp,
	}, {
		name:      "timestamp beyond drift bound",
		in:        &types.Input{Timestamp: "2024-03-20T12:45:59.249000Z-0000-node2"},
		wantCode:  http.StatusUnprocessableEntity,
		wantError: msg.DriftExceeded,
	}}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			code, res := do(t, r, http.MethodPost, RECEIVE_ENDPOINT, tc.in)
			if code != tc.wantCode {
				t.Errorf("got status %d, wanted %d", code, tc.wantCode)
			}
			if tc.wantStamp != "" && res.Timestamp != tc.wantStamp {
				t.Errorf("got timestamp %q, wanted %q", res.Timestamp, tc.wantStamp)
			}
			if tc.wantError != "" && res.Error != tc.wantError {
				t.Errorf("got error %q, wanted %q", res.Error, tc.wantError)
			}
		})
	}
}

func TestNowEndpoint(t *testing.T) {
	T := time.Date(2024, 3, 20, 10, 45, 58, 249000000, time.UTC)
	r := testRouter(t, "node1", T)

	code, res := do(t, r, http.MethodGet, NOW_ENDPOINT, nil)
	if code != http.StatusOK {
		t.Fatalf("got status %d, wanted 200", code)
	}
	// A fresh clock sits at the epoch until something advances it.
	if res.Timestamp != "1970-01-01T00:00:00.000000Z-0000-node1" {
		t.Errorf("got timestamp %q", res.Timestamp)
	}

	// Reading must not advance the clock.
	_, res2 := do(t, r, http.MethodGet, NOW_ENDPOINT, nil)
	if res2.Timestamp != res.Timestamp {
		t.Errorf("now endpoint advanced the clock: %q then %q", res.Timestamp, res2.Timestamp)
	}
}

func TestBadRequestBody(t *testing.T) {
	T := time.Date(2024, 3, 20, 10, 45, 58, 249000000, time.UTC)
	r := testRouter(t, "node1", T)

	req := httptest.NewRequest(http.MethodPost, RECEIVE_ENDPOINT, bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("got status %d, wanted 400", rec.Code)
	}
}
