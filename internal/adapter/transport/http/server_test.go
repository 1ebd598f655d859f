package http_server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dayanaadylkhanova/dice-roller/internal/dice"
	"github.com/dayanaadylkhanova/dice-roller/internal/entity"
	"github.com/dayanaadylkhanova/dice-roller/internal/service"
	"github.com/golang/mock/gomock"
	"go.uber.org/zap"
)

type mocks struct {
	roller  *service.MockRollerPort
	stats   *service.MockStatsReaderPort
	flusher *service.MockFlusherPort
}

func newTestServer(t *testing.T) (http.Handler, mocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := mocks{
		roller:  service.NewMockRollerPort(ctrl),
		stats:   service.NewMockStatsReaderPort(ctrl),
		flusher: service.NewMockFlusherPort(ctrl),
	}
	return NewServer(zap.NewNop(), ":0", m.roller, m.stats, m.flusher).Handler(), m
}

func do(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeErr(t *testing.T, rec *httptest.ResponseRecorder) entity.ErrorResponse {
	t.Helper()
	var e entity.ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&e); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return e
}

func TestHealthz(t *testing.T) {
	h, _ := newTestServer(t)
	if rec := do(h, http.MethodGet, "/healthz", ""); rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestRollNotation(t *testing.T) {
	h, m := newTestServer(t)
	m.roller.EXPECT().
		RollNotation(gomock.Any(), "2d4 + 1").
		Return(dice.RollResult{Instruction: "2d4 + 1", Rolls: []int{3, 4}, Total: 8}, nil)

	rec := do(h, http.MethodGet, "/roll?roll=2d4+%2B+1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body)
	}
	var res dice.RollResult
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.Total != 8 || len(res.Rolls) != 2 || res.Instruction != "2d4 + 1" {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestRollNotation_ParseError(t *testing.T) {
	h, m := newTestServer(t)
	_, parseErr := dice.Parse("3e6")
	m.roller.EXPECT().RollNotation(gomock.Any(), "3e6").Return(dice.RollResult{}, parseErr)

	rec := do(h, http.MethodGet, "/roll?roll=3e6", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	if e := decodeErr(t, rec); e.Kind != string(dice.KindParse) || !strings.Contains(e.Message, "1d20") {
		t.Fatalf("unexpected error body: %+v", e)
	}
}

func TestRoll_Structured(t *testing.T) {
	h, m := newTestServer(t)
	m.roller.EXPECT().
		Roll(gomock.Any(), dice.RollInstruction{Num: 1, Die: 20}).
		Return(dice.RollResult{Instruction: "1d20", Rolls: []int{17}, Total: 17}, nil)

	rec := do(h, http.MethodPost, "/roll", `{"num":1,"die":20}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body)
	}
}

func TestRoll_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		in   dice.RollInstruction
		body string
		kind dice.Kind
	}{
		{name: "invalid die", in: dice.RollInstruction{Num: 1, Die: 7}, body: `{"num":1,"die":7}`, kind: dice.KindInvalidDie},
		{name: "too few", in: dice.RollInstruction{Num: 0, Die: 8}, body: `{"num":0,"die":8}`, kind: dice.KindTooFewDice},
		{name: "too many", in: dice.RollInstruction{Num: 100, Die: 8}, body: `{"num":100,"die":8}`, kind: dice.KindTooManyDice},
		{name: "huge modifier", in: dice.RollInstruction{Num: 1, Die: 6, Modifier: 1 << 40}, body: `{"num":1,"die":6,"modifier":1099511627776}`, kind: dice.KindInvalidModifier},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h, m := newTestServer(t)
			_, rollErr := dice.NewGenerator(dice.NewSeededSource(1)).Roll(tc.in)
			m.roller.EXPECT().Roll(gomock.Any(), tc.in).Return(dice.RollResult{}, rollErr)

			rec := do(h, http.MethodPost, "/roll", tc.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d", rec.Code)
			}
			if e := decodeErr(t, rec); e.Kind != string(tc.kind) {
				t.Fatalf("kind = %q, want %q", e.Kind, tc.kind)
			}
		})
	}
}

func TestRoll_RejectsUnknownFields(t *testing.T) {
	h, _ := newTestServer(t)
	rec := do(h, http.MethodPost, "/roll", `{"num":1,"die":20,"advantage":true}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestStats(t *testing.T) {
	h, m := newTestServer(t)
	at := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)
	m.stats.EXPECT().ListStats(gomock.Any()).Return([]entity.Stat{{Die: 8, Roll: 5, RollCount: 3, UpdatedAt: at}}, nil)

	rec := do(h, http.MethodGet, "/stats", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp entity.StatsResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Stats) != 1 || resp.Stats[0].RollCount != 3 || !resp.Stats[0].UpdatedAt.Equal(at) {
		t.Fatalf("unexpected stats: %+v", resp)
	}
}

func TestStats_StoreUnavailable(t *testing.T) {
	h, m := newTestServer(t)
	m.stats.EXPECT().ListStats(gomock.Any()).Return(nil, service.ErrStoreUnavailable)

	if rec := do(h, http.MethodGet, "/stats", ""); rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestPending(t *testing.T) {
	h, m := newTestServer(t)
	m.flusher.EXPECT().Pending(gomock.Any()).Return(service.BufferStatus{Pending: true, CycleID: "c", Entries: 2, Rolls: 4}, nil)

	rec := do(h, http.MethodGet, "/stats/pending", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var st service.BufferStatus
	if err := json.NewDecoder(rec.Body).Decode(&st); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !st.Pending || st.CycleID != "c" || st.Rolls != 4 {
		t.Fatalf("unexpected status: %+v", st)
	}
}

func TestFlush(t *testing.T) {
	tests := []struct {
		name   string
		target string
		setup  func(m mocks)
		status int
	}{
		{
			name:   "flush ok",
			target: "/stats/flush",
			setup: func(m mocks) {
				m.flusher.EXPECT().Flush(gomock.Any()).Return(service.FlushReport{CycleID: "c", Entries: 1, Rolls: 2}, nil)
			},
			status: http.StatusOK,
		},
		{
			name:   "nothing to flush",
			target: "/stats/flush",
			setup: func(m mocks) {
				m.flusher.EXPECT().Flush(gomock.Any()).Return(service.FlushReport{}, &service.CycleError{Phase: service.PhaseRotate, Err: service.ErrNothingToFlush})
			},
			status: http.StatusNoContent,
		},
		{
			name:   "buffer in the way",
			target: "/stats/flush",
			setup: func(m mocks) {
				m.flusher.EXPECT().Flush(gomock.Any()).Return(service.FlushReport{}, &service.CycleError{Phase: service.PhaseRotate, Err: service.ErrFlushInProgress})
			},
			status: http.StatusConflict,
		},
		{
			name:   "resume",
			target: "/stats/flush?resume=true",
			setup: func(m mocks) {
				m.flusher.EXPECT().Resume(gomock.Any()).Return(service.FlushReport{CycleID: "old", Replayed: true}, nil)
			},
			status: http.StatusOK,
		},
		{
			name:   "resume without buffer",
			target: "/stats/flush?resume=1",
			setup: func(m mocks) {
				m.flusher.EXPECT().Resume(gomock.Any()).Return(service.FlushReport{}, &service.CycleError{Phase: service.PhaseRead, Err: service.ErrNoBuffer})
			},
			status: http.StatusNotFound,
		},
		{
			name:   "merge failure",
			target: "/stats/flush",
			setup: func(m mocks) {
				m.flusher.EXPECT().Flush(gomock.Any()).Return(service.FlushReport{}, &service.CycleError{Phase: service.PhaseMerge, CycleID: "c", Err: context.DeadlineExceeded})
			},
			status: http.StatusInternalServerError,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h, m := newTestServer(t)
			tc.setup(m)
			if rec := do(h, http.MethodPost, tc.target, ""); rec.Code != tc.status {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tc.status, rec.Body)
			}
		})
	}
}
