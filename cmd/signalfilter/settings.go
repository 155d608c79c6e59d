package main

import (
	"fmt"
	"strconv"

	"github.com/qepting91/signal-filter/internal/settings"
	"github.com/spf13/cobra"
)

func settingsCmd(g *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change the minimum karma and intro filter",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "get",
		Short: "Print the effective settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			minKarma, hideIntros, err := settings.NewEditor(settings.NewStore(g.settingsPath)).Load()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "min_karma: %d\nhide_intros: %t\n", minKarma, hideIntros)
			return nil
		},
	})

	var minKarma, hideIntros string
	set := &cobra.Command{
		Use:   "set",
		Short: "Save settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			editor := settings.NewEditor(settings.NewStore(g.settingsPath))
			curKarma, curHide, err := editor.Load()
			if err != nil {
				return err
			}

			karmaText := strconv.Itoa(curKarma)
			if cmd.Flags().Changed("min-karma") {
				karmaText = minKarma
			}
			hide := curHide
			if cmd.Flags().Changed("hide-intros") {
				hide, err = strconv.ParseBool(hideIntros)
				if err != nil {
					return fmt.Errorf("--hide-intros: %w", err)
				}
			}

			k, h, err := editor.Save(karmaText, hide)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved (min_karma: %d, hide_intros: %t)\n", k, h)
			return nil
		},
	}
	set.Flags().StringVar(&minKarma, "min-karma", "", "Minimum karma to keep a post")
	set.Flags().StringVar(&hideIntros, "hide-intros", "", "Hide introduction posts (true/false)")
	cmd.AddCommand(set)

	return cmd
}
