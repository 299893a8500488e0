package cmd

import (
	"github.com/abhisek/blockmath/internal/app"
	"github.com/abhisek/blockmath/internal/blocks"
	"github.com/abhisek/blockmath/internal/diagnosis"
	"github.com/abhisek/blockmath/internal/screens/play"
	"github.com/spf13/cobra"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command, playNow bool) error {
	req, err := requestFromFlags(cmd)
	if err != nil {
		return err
	}
	mgr, err := managerFromFlags(cmd)
	if err != nil {
		return err
	}

	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	provider := providerFromFlags(cmd.Context(), cmd, st.EventRepo())
	diag := diagnosis.NewService(provider)
	defer diag.Close()

	opts := app.Options{
		Play: play.Deps{
			Generator: generatorFromFlags(cmd, provider),
			Request:   req,
			Manager:   mgr,
			Sessions:  st.SessionRepo(),
			Blocks:    blocks.NewService(st.BlockRepo()),
			Diagnosis: diag,
		},
		UpdateCheck: checkForUpdate,
		PlayNow:     playNow,
	}
	return app.Run(opts)
}
