package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kalshi-go/kalshi"
	"github.com/kalshi-go/kalshi/auth"
	"github.com/kalshi-go/kalshi/config"
	"github.com/kalshi-go/kalshi/internal/log"
	"github.com/kalshi-go/kalshi/retry"
)

const usage = `usage: kalshi [-config file] <command> [arguments]

commands:
  status               exchange status
  markets [-limit N] [-status S] [-series T]
                       list markets
  balance              portfolio balance (requires credentials)
  snapshot             status, schedule and balance in one go
  get <path>           signed GET of an arbitrary API path
`

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "path to a YAML config file; the environment is always read")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := log.NewLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func(logger *zap.Logger) {
		_ = logger.Sync()
	}(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger, os.Stdout, flag.Args()); err != nil {
		logger.Error("command failed",
			zap.String("command", flag.Arg(0)),
			zap.String("kind", string(kalshi.KindOf(err))),
			zap.Error(err),
		)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger, out io.Writer, args []string) error {
	options, err := cfg.ClientOptions()
	if err != nil {
		return err
	}
	client, err := kalshi.New(append(options, kalshi.WithLogger(logger))...)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}
	defer client.Close()

	policy := cfg.RetryPolicy()
	policy.Logger = logger

	switch args[0] {
	case "status":
		status, err := retry.Value(ctx, policy, "exchange_status", client.GetExchangeStatus)
		if err != nil {
			return err
		}
		return printJSON(out, status)
	case "markets":
		return runMarkets(ctx, client, out, args[1:])
	case "balance":
		balance, err := retry.Value(ctx, policy, "balance", client.GetBalance)
		if err != nil {
			return err
		}
		return printJSON(out, balance)
	case "snapshot":
		return runSnapshot(ctx, client, policy, out)
	case "get":
		if len(args) != 2 {
			return errors.New("get takes exactly one path")
		}
		return runGet(ctx, cfg, out, args[1])
	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func runMarkets(ctx context.Context, client *kalshi.Client, out io.Writer, args []string) error {
	fs := flag.NewFlagSet("markets", flag.ContinueOnError)
	limit := fs.Int("limit", 20, "stop after this many markets")
	status := fs.String("status", "", "filter by status: unopened, open, closed or settled")
	series := fs.String("series", "", "filter by series ticker")
	if err := fs.Parse(args); err != nil {
		return err
	}

	q := kalshi.MarketsQuery{Limit: kalshi.Ptr(min(*limit, 1000))}
	if *status != "" {
		q.Status = status
	}
	if *series != "" {
		q.SeriesTicker = series
	}

	markets, err := kalshi.Collect(kalshi.Limit(client.Markets(ctx, q), *limit))
	if err != nil {
		return err
	}
	return printJSON(out, markets)
}

type snapshot struct {
	Status   kalshi.ExchangeStatus      `json:"status"`
	Schedule kalshi.Schedule            `json:"schedule"`
	Balance  *kalshi.GetBalanceResponse `json:"balance,omitempty"`
}

func runSnapshot(ctx context.Context, client *kalshi.Client, policy retry.Policy, out io.Writer) error {
	var snap snapshot

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		status, err := retry.Value(ctx, policy, "exchange_status", client.GetExchangeStatus)
		snap.Status = status
		return err
	})
	g.Go(func() error {
		schedule, err := retry.Value(ctx, policy, "exchange_schedule", client.GetExchangeSchedule)
		snap.Schedule = schedule.Schedule
		return err
	})
	if client.Authenticated() {
		g.Go(func() error {
			balance, err := retry.Value(ctx, policy, "balance", client.GetBalance)
			if err != nil {
				return err
			}
			snap.Balance = &balance
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return printJSON(out, snap)
}

func runGet(ctx context.Context, cfg *config.Config, out io.Writer, path string) error {
	cred, err := cfg.Credential()
	if err != nil {
		return err
	}
	defer cred.Destroy()

	signer, err := auth.NewSigner(cred, auth.DefaultScheme)
	if err != nil {
		return err
	}
	httpClient := auth.NewHTTPClient(signer, cfg.Timeout)

	if !strings.HasPrefix(path, kalshi.APIPrefix) {
		path = kalshi.APIPrefix + "/" + strings.TrimPrefix(path, "/")
	}
	baseURL, err := kalshi.ResolveBaseURL(cfg.BaseURL)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, err = io.Copy(out, resp.Body)
	return err
}

func printJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
