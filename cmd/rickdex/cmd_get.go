package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"rickdex/cmd/rickdex/ui"
	"rickdex/internal/api"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"
)

func newGetCmd(g *globalOptions) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "get ID...",
		Short: "Show characters by id",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(cmd.Context(), g, cmd.OutOrStdout(), args, asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON")
	return cmd
}

// runGet fetches every id concurrently and prints them in argument order.
func runGet(ctx context.Context, g *globalOptions, out io.Writer, args []string, asJSON bool) error {
	ids := make([]int, len(args))
	for i, a := range args {
		id, err := strconv.Atoi(a)
		if err != nil || id < 1 {
			return fmt.Errorf("invalid character id %q", a)
		}
		ids[i] = id
	}

	client := g.client()
	chars := make([]*api.Character, len(ids))
	eg, ctx := errgroup.WithContext(ctx)
	for i, id := range ids {
		eg.Go(func() error {
			c, err := client.GetCharacter(ctx, id)
			if err != nil {
				return fmt.Errorf("get character %d: %w", id, err)
			}
			chars[i] = c
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(chars)
	}

	r, err := ui.NewRenderer(g.cfg.Browse.Theme, 80, term.IsTerminal(int(os.Stdout.Fd())))
	if err != nil {
		return fmt.Errorf("markdown renderer: %w", err)
	}
	for _, c := range chars {
		fmt.Fprint(out, ui.RenderMarkdown(r, ui.CharacterMarkdown(*c)))
	}
	return nil
}
