package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/oauth2/clientcredentials"

	itemfetch "github.com/caldera-labs/itemfetch"
	"github.com/caldera-labs/itemfetch/internal/fetchlog"
	"github.com/caldera-labs/itemfetch/transport"
)

func newFetchCmd() *cobra.Command {
	var (
		configPath string
		params     []string
		minScore   float64
	)

	cmd := &cobra.Command{
		Use:   "fetch [path]",
		Short: "Fetch an item feed and print the derived summary",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/api/items"
			if len(args) == 1 {
				path = args[0]
			}

			cfg, err := itemfetch.LoadConfig(configPath)
			if err != nil {
				return err
			}
			if err := itemfetch.ValidateConfig(*cfg); err != nil {
				return fmt.Errorf("invalid config: %w", err)
			}

			parsed, err := parseParams(params)
			if err != nil {
				return err
			}

			client, closeFn, err := buildClient(*cfg)
			if err != nil {
				return err
			}
			defer closeFn()

			items, err := client.FetchItems(cmd.Context(), path, itemfetch.RequestOptions{Params: parsed})
			if err != nil {
				return err
			}

			summary := itemfetch.Summarize(items)
			fmt.Printf("Total:     %d\n", summary.Total)
			fmt.Printf("Active:    %d\n", summary.Active)
			fmt.Printf("Max score: %g\n", summary.MaxScore)

			top := itemfetch.SortByScore(itemfetch.FilterActive(items, minScore))
			for _, name := range itemfetch.DisplayNames(top) {
				fmt.Println(" -", name)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "itemfetch.yaml", "config file (JSON/YAML)")
	cmd.Flags().StringArrayVarP(&params, "param", "p", nil, "query parameter as key=value (repeatable)")
	cmd.Flags().Float64Var(&minScore, "min-score", 0, "score threshold for the displayed subset")
	return cmd
}

// buildClient wires transport, fetch log, and auth from config. The returned
// close function releases the fetch log handle.
func buildClient(cfg itemfetch.Config) (*itemfetch.Client, func(), error) {
	var httpOpts []transport.HTTPOption
	if cfg.Auth != nil {
		switch {
		case cfg.Auth.Token != "":
			httpOpts = append(httpOpts, transport.WithBearerToken(cfg.Auth.Token))
		case cfg.Auth.TokenURL != "":
			cc := clientcredentials.Config{
				ClientID:     cfg.Auth.ClientID,
				ClientSecret: cfg.Auth.ClientSecret,
				TokenURL:     cfg.Auth.TokenURL,
			}
			httpOpts = append(httpOpts, transport.WithTokenSource(cc.TokenSource(context.Background())))
		}
	}
	caller := transport.NewHTTP(httpOpts...)

	var opts []itemfetch.Option
	closeFn := func() {}
	if cfg.FetchLog != nil {
		var (
			w   *fetchlog.SQLWriter
			err error
		)
		switch cfg.FetchLog.Driver {
		case "postgres":
			w, err = fetchlog.NewPostgresWriter(cfg.FetchLog.DSN)
		default:
			w, err = fetchlog.NewSQLiteWriter(cfg.FetchLog.DSN)
		}
		if err != nil {
			return nil, nil, err
		}
		opts = append(opts, itemfetch.WithFetchLog(w))
		closeFn = func() { _ = w.Close() }
	}

	client, err := itemfetch.New(cfg, caller, opts...)
	if err != nil {
		closeFn()
		return nil, nil, err
	}
	return client, closeFn, nil
}

// parseParams converts repeated key=value flags into a map.
func parseParams(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	out := make(map[string]string, len(pairs))
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid param %q: expected key=value", p)
		}
		out[k] = v
	}
	return out, nil
}
