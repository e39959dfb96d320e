package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/internal/logging"
	"github.com/aretw0/automata/internal/presentation/tui"
	httpAdapter "github.com/aretw0/automata/pkg/adapters/http"
	"github.com/aretw0/automata/pkg/adapters/memory"
	"github.com/aretw0/automata/pkg/adapters/redis"
	"github.com/aretw0/automata/pkg/observability"
	"github.com/aretw0/automata/pkg/ports"
	"github.com/aretw0/automata/pkg/session"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Serves the automata in --dir (or --file) as a JSON API, with interactive
sessions kept in memory or, with --redis, in Redis behind a distributed lock.
Prometheus metrics are exposed at /metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")
		redisAddr, _ := cmd.Flags().GetString("redis")
		redisTTL, _ := cmd.Flags().GetDuration("redis-ttl")
		watch, _ := cmd.Flags().GetBool("watch")
		levelName, _ := cmd.Flags().GetString("log-level")

		level, err := logging.ParseLevel(levelName)
		if err != nil {
			return err
		}
		logger := logging.New(level)

		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		metrics := observability.NewMetrics(reg)

		eng, err := newEngine(cmd, automata.WithLifecycleHooks(metrics.Hooks()))
		if err != nil {
			return fmt.Errorf("error initializing engine: %w", err)
		}

		var store ports.RunStore = memory.NewStore()
		var sessionOpts []session.Option
		if redisAddr != "" {
			rs := redis.New(redisAddr, "", 0, redis.WithTTL(redisTTL))
			defer rs.Close()
			store = rs
			sessionOpts = append(sessionOpts, session.WithLocker(redis.NewLocker(rs.Client(), "automata:")))
			logger.Info("Using redis session store", "addr", redisAddr, "ttl", redisTTL)
		}
		sessionOpts = append(sessionOpts, session.WithLogger(logger))
		sessions := session.NewManager(store, eng, sessionOpts...)

		handler := httpAdapter.NewHandler(eng, sessions,
			httpAdapter.WithLogger(logger),
			httpAdapter.WithMetrics(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})),
		)
		srv := &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		var changes <-chan string
		if watch {
			changes, err = eng.Watch(ctx)
			if err != nil {
				return err
			}
		}

		g, ctx := errgroup.WithContext(ctx)

		g.Go(func() error {
			if isTerminal(cmd.OutOrStdout()) {
				tui.PrintBanner(cmd.OutOrStdout(), addr)
			}
			logger.Info("Starting server", "addr", addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("server error: %w", err)
			}
			return nil
		})

		if changes != nil {
			g.Go(func() error {
				for id := range changes {
					logger.Info("Reloaded definition", "automaton", id)
				}
				return nil
			})
		}

		g.Go(func() error {
			<-ctx.Done()
			logger.Info("Shutting down server")

			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				_ = srv.Close()
				return fmt.Errorf("graceful shutdown did not complete in %v: %w", shutdownTimeout, err)
			}
			return nil
		})

		return g.Wait()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", ":8080", "Address to listen on")
	serveCmd.Flags().String("redis", "", "Redis address for sessions (default: in-memory)")
	serveCmd.Flags().Duration("redis-ttl", 24*time.Hour, "Expiry of idle sessions in Redis")
	serveCmd.Flags().Bool("watch", false, "Reload definitions when files in --dir change")
}
