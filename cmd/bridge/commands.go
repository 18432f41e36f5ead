package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/goran-ethernal/MercuryBridge/internal/ledger"
	"github.com/goran-ethernal/MercuryBridge/internal/mercury"
	pkgconfig "github.com/goran-ethernal/MercuryBridge/pkg/config"
	pkgledger "github.com/goran-ethernal/MercuryBridge/pkg/ledger"
	pkgmercury "github.com/goran-ethernal/MercuryBridge/pkg/mercury"
	"github.com/spf13/cobra"
)

var errOperationFailed = errors.New("operation failed")

// writeJSON prints v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	encoded, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}

	_, err = fmt.Fprintln(w, string(encoded))
	return err
}

// printResult prints res as {"data": ..., "error": ...} and fails the command when res failed.
func printResult[T any](cmd *cobra.Command, res pkgmercury.Result[T]) error {
	if err := writeJSON(cmd.OutOrStdout(), res); err != nil {
		return err
	}

	if res.Failed() {
		return errOperationFailed
	}

	return nil
}

// withClient loads the configuration and runs fn with a client until it returns or the process is signalled.
func withClient(fn func(ctx context.Context, client *mercury.Client) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := openLedger(cfg)
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close() //nolint:errcheck
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return fn(ctx, newClient(cfg, store))
}

// withLedger loads the configuration and runs fn against the ledger store.
func withLedger(fn func(ctx context.Context, cfg *pkgconfig.Config, store *ledger.Store) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := openLedger(cfg)
	if err != nil {
		return err
	}
	if store == nil {
		return fmt.Errorf("ledger is not enabled in the configuration")
	}
	defer store.Close() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return fn(ctx, cfg, store)
}

func addOperationCommands(root *cobra.Command) {
	root.AddCommand(&cobra.Command{
		Use:   "renew-token",
		Short: "Authenticate with the configured credentials and print the new token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(func(ctx context.Context, client *mercury.Client) error {
				return printResult(cmd, client.RenewToken(ctx))
			})
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "get-subscription <id>",
		Short: "Print a contract event by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(func(ctx context.Context, client *mercury.Client) error {
				return printResult(cmd, client.GetSubscriptionByID(ctx, args[0]))
			})
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "list-subscriptions",
		Short: "List contract event subscriptions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(func(ctx context.Context, client *mercury.Client) error {
				return printResult(cmd, client.GetSubscriptions(ctx))
			})
		},
	})

	root.AddCommand(newAddSubscriptionCmd())

	root.AddCommand(&cobra.Command{
		Use:   "token-subscription <contract-id> <pub-key>",
		Short: "Subscribe to the transfer and mint events of a token for an account",
		Args:  cobra.ExactArgs(2), //nolint:mnd
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(func(ctx context.Context, client *mercury.Client) error {
				return printResult(cmd, client.AddNewTokenSubscription(ctx, args[0], args[1]))
			})
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "account-subscription <pub-key>",
		Short: "Subscribe to every change of an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(func(ctx context.Context, client *mercury.Client) error {
				return printResult(cmd, client.AddNewAccountSubscription(ctx, args[0]))
			})
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "account-history <pub-key>",
		Short: "Print the account creations, merges and payments of an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(func(ctx context.Context, client *mercury.Client) error {
				return printResult(cmd, client.GetAccountHistory(ctx, args[0]))
			})
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "encode-topic <symbol>",
		Short: "Print the base64 XDR ScVal topic filter for a symbol",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), mercury.EncodeTopic(args[0]))
			return err
		},
	})
}

func newAddSubscriptionCmd() *cobra.Command {
	var (
		req    pkgmercury.SubscriptionRequest
		fields map[string]string
	)

	cmd := &cobra.Command{
		Use:   "add-subscription",
		Short: "Create a contract event subscription",
		Example: `  bridge add-subscription --contract-id CABC... --max-single-size 200 \
    --topic1 AAAADgAAAARtaW50 --field hydrate=true`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for k, v := range fields {
				if req.Extra == nil {
					req.Extra = make(map[string]any, len(fields))
				}
				req.Extra[k] = parseFieldValue(v)
			}

			return withClient(func(ctx context.Context, client *mercury.Client) error {
				return printResult(cmd, client.AddNewSubscription(ctx, req))
			})
		},
	}

	cmd.Flags().StringVar(&req.ContractID, "contract-id", "", "contract to watch")
	cmd.Flags().IntVar(&req.MaxSingleSize, "max-single-size", pkgmercury.DefaultMaxSingleSize,
		"maximum size of a single event")
	cmd.Flags().StringVar(&req.Topic1, "topic1", "", "first topic filter (base64 XDR ScVal)")
	cmd.Flags().StringVar(&req.Topic2, "topic2", "", "second topic filter")
	cmd.Flags().StringVar(&req.Topic3, "topic3", "", "third topic filter")
	cmd.Flags().StringVar(&req.Topic4, "topic4", "", "fourth topic filter")
	cmd.Flags().StringToStringVar(&fields, "field", nil, "additional body field as key=value, may be repeated")

	return cmd
}

// parseFieldValue keeps booleans and numbers typed so they are sent as JSON literals.
func parseFieldValue(v string) any {
	if b, err := strconv.ParseBool(v); err == nil {
		return b
	}
	if n, err := strconv.ParseInt(v, 10, 64); err == nil {
		return n
	}
	return v
}

func addLedgerCommands(root *cobra.Command) {
	ledgerCmd := &cobra.Command{
		Use:   "ledger",
		Short: "Inspect and maintain the subscription ledger",
	}

	var limit, offset int
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded subscription attempts, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withLedger(func(ctx context.Context, _ *pkgconfig.Config, store *ledger.Store) error {
				entries, err := store.List(ctx, limit, offset)
				if err != nil {
					return err
				}
				if entries == nil {
					entries = []pkgledger.Entry{}
				}
				return writeJSON(cmd.OutOrStdout(), entries)
			})
		},
	}
	listCmd.Flags().IntVar(&limit, "limit", pkgledger.DefaultListLimit, "maximum number of entries")
	listCmd.Flags().IntVar(&offset, "offset", 0, "number of entries to skip")

	var olderThan time.Duration
	pruneCmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete attempts older than the given age and compact the database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withLedger(func(ctx context.Context, cfg *pkgconfig.Config, store *ledger.Store) error {
				age := olderThan
				if age == 0 {
					age = cfg.Ledger.Retention.Duration
				}
				if age <= 0 {
					return fmt.Errorf("no age given and ledger.retention is not set")
				}

				deleted, err := store.Prune(ctx, time.Now().Add(-age))
				if err != nil {
					return err
				}
				if deleted > 0 {
					if err := store.Compact(ctx); err != nil {
						return err
					}
				}

				return writeJSON(cmd.OutOrStdout(), map[string]int64{"deleted": deleted})
			})
		},
	}
	pruneCmd.Flags().DurationVar(&olderThan, "older-than", 0, "age of the attempts to delete (default: ledger.retention)")

	ledgerCmd.AddCommand(listCmd, pruneCmd)
	root.AddCommand(ledgerCmd)
}
