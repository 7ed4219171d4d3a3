// Package handlers exposes the node's hybrid logical clock over HTTP.
package handlers

import (
	"errors"
	"net/http"

	"hybridclock/pkg/clock"
	"hybridclock/pkg/msg"
	"hybridclock/pkg/types"

	"github.com/gorilla/mux"
)

const (
	EVENT_ENDPOINT   = "/hlc/event"
	SEND_ENDPOINT    = "/hlc/send"
	RECEIVE_ENDPOINT = "/hlc/receive"
	NOW_ENDPOINT     = "/hlc/now"
)

// State holds the clock an instance serves.
type State struct {
	clock *clock.Clock
}

func New(c *clock.Clock) *State {
	return &State{clock: c}
}

func (s *State) eventHandler(in types.Input, res *types.Response) {
	packed, err := s.clock.EventPacked()
	if err != nil {
		fillError(res, err)
		return
	}
	res.Message = msg.EventSuccess
	res.Timestamp = packed
	res.Node = s.clock.Node().String()
}

func (s *State) sendHandler(in types.Input, res *types.Response) {
	packed, err := s.clock.SendPacked()
	if err != nil {
		fillError(res, err)
		return
	}
	res.Message = msg.SendSuccess
	res.Timestamp = packed
	res.Node = s.clock.Node().String()
}

func (s *State) receiveHandler(in types.Input, res *types.Response) {
	if in.Timestamp == "" {
		res.Error = msg.TimestampMissing
		res.Status = http.StatusBadRequest
		return
	}

	merged, err := s.clock.ReceivePacked(in.Timestamp)
	if err != nil {
		fillError(res, err)
		return
	}

	packed, err := s.clock.Pack(merged)
	if err != nil {
		fillError(res, err)
		return
	}
	res.Message = msg.ReceiveSuccess
	res.Timestamp = packed
	res.Node = s.clock.Node().String()
}

func (s *State) nowHandler(in types.Input, res *types.Response) {
	packed, err := s.clock.Pack(s.clock.Current())
	if err != nil {
		fillError(res, err)
		return
	}
	res.Message = msg.NowSuccess
	res.Timestamp = packed
	res.Node = s.clock.Node().String()
}

// fillError maps clock errors onto HTTP statuses. Malformed input is
// the caller's fault; a tripped invariant means the request was
// syntactically fine but cannot be applied.
func fillError(res *types.Response, err error) {
	switch {
	case errors.Is(err, clock.ErrTimestampFormat):
		res.Error = msg.BadTimestamp
		res.Status = http.StatusBadRequest
	case errors.Is(err, clock.ErrCounterOverflow):
		res.Error = msg.CounterExhausted
		res.Status = http.StatusUnprocessableEntity
	case errors.Is(err, clock.ErrClockDrift):
		res.Error = msg.DriftExceeded
		res.Status = http.StatusUnprocessableEntity
	default:
		res.Error = err.Error()
		res.Status = http.StatusInternalServerError
	}
}

func (s *State) Route(r *mux.Router) {
	r.HandleFunc(EVENT_ENDPOINT, types.WrapHTTP(s.eventHandler)).Methods(http.MethodPost)
	r.HandleFunc(SEND_ENDPOINT, types.WrapHTTP(s.sendHandler)).Methods(http.MethodPost)
	r.HandleFunc(RECEIVE_ENDPOINT, types.WrapHTTP(s.receiveHandler)).Methods(http.MethodPost)
	r.HandleFunc(NOW_ENDPOINT, types.WrapHTTP(s.nowHandler)).Methods(http.MethodGet)
}
