package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/opsboard/pkg/card"
)

// cardsCommand creates the cards command for printing a view's effective order.
func (c *CLI) cardsCommand() *cobra.Command {
	var (
		cf    contextFlags
		plain bool
	)

	cmd := &cobra.Command{
		Use:   "cards <view>",
		Short: "Print the effective card order of a view",
		Long: `Print the cards of a view in their effective order: the stored order for
the view's scope, reconciled with the cards currently visible for the given
roles and categories.`,
		Example: `  opsboard cards dashboard --role admin
  opsboard cards funnel --funnel 7b0e6a58-4bd4-4c43-9a8e-2f1c2a8f5d10 --category forecast`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: card.Views(),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			prog := newProgress(loggerFromContext(ctx))

			b, orders, err := c.mountBoard(ctx, args[0], &cf)
			if err != nil {
				return err
			}
			defer orders.Close()

			cards := b.Cards()
			prog.done("Mounted "+args[0], "scope", b.Scope(), "cards", len(cards))

			w := cmd.OutOrStdout()
			if plain {
				for _, cd := range cards {
					fmt.Fprintln(w, cd.ID)
				}
				return nil
			}
			fmt.Fprintln(w, StyleTitle.Render(args[0])+" "+StyleDim.Render(b.Scope()))
			fmt.Fprintln(w, renderCards(cards, -1))
			return nil
		},
	}

	cf.register(cmd)
	cmd.Flags().BoolVar(&plain, "plain", false, "print card ids only, one per line")
	return cmd
}
