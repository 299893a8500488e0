package cmd

import (
	"fmt"
	"strings"

	"github.com/abhisek/blockmath/internal/blocks"
	"github.com/spf13/cobra"
)

var blocksCmd = &cobra.Command{
	Use:   "blocks",
	Short: "Show collected blocks",
	RunE: func(cmd *cobra.Command, args []string) error {
		recent, _ := cmd.Flags().GetInt("recent")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		svc := blocks.NewService(s.BlockRepo())
		inv, err := svc.Inventory(ctx)
		if err != nil {
			return err
		}

		fmt.Printf("%-8s  %5s\n", "Kind", "Count")
		fmt.Println(strings.Repeat("─", 15))
		for _, k := range blocks.AllKinds() {
			fmt.Printf("%-8s  %5d\n", k.DisplayName(), inv[k])
		}
		fmt.Println(strings.Repeat("─", 15))
		fmt.Printf("%-8s  %5d\n", "TOTAL", inv.Total())

		if recent <= 0 {
			return nil
		}
		awards, err := svc.Recent(ctx, recent)
		if err != nil {
			return err
		}
		if len(awards) == 0 {
			return nil
		}
		fmt.Println()
		fmt.Println("Recent")
		for _, a := range awards {
			fmt.Printf("  %s  %-6s %-7s %s\n",
				a.AwardedAt.Local().Format("2006-01-02 15:04"), a.Kind.DisplayName(), a.Rarity.DisplayName(), a.Reason)
		}
		return nil
	},
}

func init() {
	blocksCmd.Flags().IntP("recent", "n", 10, "Number of recent blocks to list (0 for none)")
}
