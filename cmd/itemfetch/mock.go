package main

import (
	"net/http"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/caldera-labs/itemfetch/internal/logging"
)

const mockItems = `{
	"items": [
		{"id": "1", "name": "anvil", "active": true, "score": 10},
		{"id": "2", "name": "feather", "active": true, "score": 2},
		{"id": "3", "name": "piano", "active": false, "score": 9}
	]
}`

func newMockCmd() *cobra.Command {
	var (
		addr      string
		failFirst int
	)

	cmd := &cobra.Command{
		Use:   "mock",
		Short: "Serve a local mock items endpoint",
		Long: `Serve a local mock items endpoint for development.

With --fail-first N the first N requests return 503, which exercises the
client's retry path end to end. Prometheus metrics are exposed on /metrics.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var served atomic.Int64

			r := chi.NewRouter()
			r.Use(middleware.Recoverer)
			r.Use(logging.Middleware)

			r.Get("/api/items", func(w http.ResponseWriter, req *http.Request) {
				n := served.Add(1)
				log := logging.FromContext(req.Context())
				if n <= int64(failFirst) {
					log.Warn("mock failure", "request", n, "fail_first", failFirst)
					http.Error(w, `{"error":"simulated outage"}`, http.StatusServiceUnavailable)
					return
				}
				log.Info("mock items served", "request", n, "params", req.URL.RawQuery)
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(mockItems))
			})
			r.Handle("/metrics", promhttp.Handler())

			srv := &http.Server{
				Addr:              addr,
				Handler:           r,
				ReadHeaderTimeout: 5 * time.Second,
			}
			logging.Logger.Info("mock items server listening", "addr", addr)

			errCh := make(chan error, 1)
			go func() { errCh <- srv.ListenAndServe() }()

			select {
			case err := <-errCh:
				return err
			case <-cmd.Context().Done():
				return srv.Close()
			}
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8098", "listen address")
	cmd.Flags().IntVar(&failFirst, "fail-first", 0, "fail the first N requests with 503")
	return cmd
}
