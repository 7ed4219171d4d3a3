// Package gossip periodically pushes this node's clock to its peers so
// that idle nodes still track the cluster's logical time.
package gossip

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"hybridclock/pkg/clock"
	"hybridclock/pkg/types"
)

const (
	RECEIVE_ENDPOINT = "/hlc/receive"
	CLIENT_TIMEOUT   = 5 * time.Second
)

// Manager owns the gossip loop for one node.
type Manager struct {
	clock    *clock.Clock
	peers    []string
	interval time.Duration
	client   *http.Client
}

// NewManager builds a gossip manager over a set of peer base URLs.
func NewManager(c *clock.Clock, peers []string, interval time.Duration) *Manager {
	return &Manager{
		clock:    c,
		peers:    peers,
		interval: interval,
		client:   &http.Client{Timeout: CLIENT_TIMEOUT},
	}
}

// Run gossips until the context is cancelled. Each round sends a fresh
// timestamp to every peer and merges whatever the peers answer with, so
// clocks converge even when no client traffic flows.
func (m *Manager) Run(ctx context.Context) {
	if len(m.peers) == 0 || m.interval <= 0 {
		log.Println("Gossip disabled")
		return
	}

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.gossip(ctx)
		}
	}
}

func (m *Manager) gossip(ctx context.Context) {
	packed, err := m.clock.SendPacked()
	if err != nil {
		log.Println("Failed to mint gossip timestamp:", err)
		return
	}

	for _, peer := range m.peers {
		if err := m.push(ctx, peer, packed); err != nil {
			// A dead peer only delays convergence; keep going.
			log.Printf("Gossip to %q failed: %v\n", peer, err)
		}
	}
}

// push delivers one packed timestamp to a peer and merges the peer's
// reply into our own clock.
func (m *Manager) push(ctx context.Context, peer, packed string) error {
	body, err := json.Marshal(types.Input{Timestamp: packed})
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, peer+RECEIVE_ENDPOINT, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req = req.WithContext(ctx)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var peerRes types.Response
	if err := json.NewDecoder(resp.Body).Decode(&peerRes); err != nil {
		return err
	}
	if peerRes.Timestamp == "" {
		// Peer refused the timestamp; nothing to merge.
		return nil
	}

	_, err = m.clock.ReceivePacked(peerRes.Timestamp)
	return err
}
