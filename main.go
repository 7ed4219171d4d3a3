package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"hybridclock/pkg/clock"
	"hybridclock/pkg/gossip"
	"hybridclock/pkg/handlers"
	"hybridclock/pkg/util"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/kelseyhightower/envconfig"
)

const (
	TIMEOUT = 5 * time.Second
)

type Config struct {
	// Port to serve HTTP on
	Port string `envconfig:"PORT" required:"true"`

	// NodeID identifies this node in every timestamp it mints. A random
	// one is generated when unset, which is fine for ephemeral nodes
	// but breaks resuming persisted state.
	NodeID string `envconfig:"NODE_ID"`

	// Peers is a comma separated list of peer base URLs to gossip with.
	Peers string `envconfig:"PEERS"`

	GossipInterval time.Duration `envconfig:"GOSSIP_INTERVAL" default:"5s"`

	MaxDrift         time.Duration `envconfig:"MAX_DRIFT" default:"1h"`
	CounterHexDigits int           `envconfig:"COUNTER_HEX_DIGITS" default:"4"`
}

func main() {
	var env Config
	envconfig.MustProcess("", &env)
	log.Printf("Configured: %+v\n", env)

	if env.NodeID == "" {
		// Canonical UUIDs contain the packed-format separator, so use
		// the bare hex form.
		env.NodeID = strings.ReplaceAll(uuid.New().String(), "-", "")
		log.Printf("Generated node id %q\n", env.NodeID)
	}
	node, err := clock.ParseNodeID(env.NodeID)
	if err != nil {
		log.Fatal(err)
	}

	peers, err := util.CSVToSlice(env.Peers)
	if err != nil {
		log.Fatal("Bad peer list: ", err)
	}

	cfg := clock.DefaultConfig()
	cfg.MaxDrift = env.MaxDrift
	cfg.CounterHexDigits = env.CounterHexDigits

	hlc, err := clock.NewWithConfig(node, cfg)
	if err != nil {
		log.Fatal(err)
	}

	// Create a mux and route handlers
	r := mux.NewRouter()
	r.Use(util.WithLog)
	handlers.New(hlc).Route(r)

	srv := &http.Server{
		Handler:      r,
		Addr:         "0.0.0.0:" + env.Port,
		ReadTimeout:  TIMEOUT,
		WriteTimeout: TIMEOUT,
	}

	ctx, cancel := context.WithCancel(context.Background())
	go gossip.NewManager(hlc, peers, env.GossipInterval).Run(ctx)

	// Run the server watching for errors
	go func() {
		log.Println("Starting server")
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	// Wait for signals to stop the server
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGINT, syscall.SIGTERM)
	<-signalChan

	log.Println("Shutdown signal received, exiting...")

	cancel()
	srv.Shutdown(context.Background())
}
