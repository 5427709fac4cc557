package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/username/weekcal/internal/api"
	"github.com/username/weekcal/internal/pubsub"
	"github.com/username/weekcal/internal/store"
	"github.com/username/weekcal/pkg/numfmt"
	"github.com/username/weekcal/pkg/textutil"
)

var knownPreferences = []string{
	store.KeyAPIServer,
	store.KeyImageServer,
	store.KeyJWTToken,
	store.KeyUserEmail,
}

func openStore(ctx context.Context) (store.Store, error) {
	s, err := store.New(ctx, &cfg.Store, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open preference store: %w", err)
	}
	return s, nil
}

func prefCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pref",
		Short: "Read and write stored preferences",
		Long: "Read and write stored preferences. Well-known keys: " +
			strings.Join(knownPreferences, ", ") + ".",
	}

	cmd.AddCommand(prefGetCmd(), prefSetCmd(), prefUnsetCmd())

	return cmd
}

func prefGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get [key]",
		Short: "Show one preference, or all well-known preferences",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			keys := knownPreferences
			if len(args) == 1 {
				keys = args
			}

			values := make(map[string]string, len(keys))
			for _, key := range keys {
				v, ok, err := s.Get(ctx, key)
				if err != nil {
					return fmt.Errorf("failed to read '%s': %w", key, err)
				}
				if ok {
					values[key] = v
				}
			}

			return render(values, func(w io.Writer) {
				for _, key := range keys {
					v, ok := values[key]
					if !ok {
						v = "(not set)"
					}
					fmt.Fprintf(w, "%-12s %s\n", key, v)
				}
			})
		},
	}
}

func prefSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Store a preference",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := args[0], args[1]
			if key == store.KeyUserEmail && !textutil.ValidateEmail(value) {
				return fmt.Errorf("invalid email address '%s'", value)
			}

			ctx := cmd.Context()
			s, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.Set(ctx, key, value); err != nil {
				return fmt.Errorf("failed to store '%s': %w", key, err)
			}

			logger.Info("Preference stored", zap.String("key", key))
			fmt.Fprintf(stdout, "✅ %s saved\n", key)
			return nil
		},
	}
}

func prefUnsetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unset <key>",
		Short: "Remove a preference",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.Remove(ctx, args[0]); err != nil {
				return fmt.Errorf("failed to remove '%s': %w", args[0], err)
			}

			logger.Info("Preference removed", zap.String("key", args[0]))
			fmt.Fprintf(stdout, "✅ %s removed\n", args[0])
			return nil
		},
	}
}

func fetchCmd() *cobra.Command {
	var method string
	var data []string
	var retries int
	var silent bool

	cmd := &cobra.Command{
		Use:   "fetch <endpoint>",
		Short: "Call the configured API server and print the JSON response",
		Long: "Call the API server stored in the apiServer preference (or api.server from the config) " +
			"with the stored jwtToken. --data pairs become the JSON body for POST, PUT, PATCH and DELETE " +
			"and the query string otherwise.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := parseKeyValues(data)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			s, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			bus := pubsub.New()
			unsubProgress := bus.Subscribe(pubsub.TopicLoadingProgress, func(payload any) {
				if pct, ok := payload.(int); ok {
					logger.Debug("Loading", zap.String("progress", numfmt.DefaultFormat(float64(pct), 0)+"%"))
				}
			})
			defer unsubProgress()
			unsubError := bus.Subscribe(pubsub.TopicErrorMessage, func(payload any) {
				logger.Warn("Request failed", zap.Any("message", payload))
			})
			defer unsubError()

			client := api.NewClient(store.NewPreferences(s), bus, cfg.API.Server, cfg.API.GetTimeout(), logger)

			var out any
			opts := api.Options{Method: method, Silent: silent, Retries: retries}
			if err := client.Fetch(ctx, args[0], opts, body, &out); err != nil {
				return fmt.Errorf("failed to fetch %s: %w", args[0], err)
			}

			return renderTo(stdout, jsonUnlessYAML(outputFormat), out, nil)
		},
	}

	cmd.Flags().StringVarP(&method, "method", "X", "GET", "HTTP method")
	cmd.Flags().StringArrayVarP(&data, "data", "d", nil, "Request field as key=value (repeatable)")
	cmd.Flags().IntVar(&retries, "retries", 1, "Attempts for transport errors and 5xx responses")
	cmd.Flags().BoolVar(&silent, "silent", false, "Do not report progress or errors on the message bus")

	return cmd
}

// jsonUnlessYAML prints API responses as JSON in text mode since they have
// no text form.
func jsonUnlessYAML(format string) string {
	if format == "yaml" {
		return "yaml"
	}
	return "json"
}

func parseKeyValues(pairs []string) (map[string]string, error) {
	values := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("data must be key=value, got '%s'", pair)
		}
		values[key] = value
	}
	return values, nil
}
