package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/meikuraledutech/postgen"
	"github.com/spf13/cobra"
)

func newAvatarCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "avatar",
		Short: "Manage stored avatars",
	}
	cmd.AddCommand(newAvatarAddCmd(a), newAvatarListCmd(a), newAvatarShowCmd(a), newAvatarRmCmd(a))
	return cmd
}

func newAvatarAddCmd(a *app) *cobra.Command {
	var file, name, niche, style string
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Store a new avatar",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			var avatar postgen.Avatar
			if file != "" {
				loaded, err := loadAvatarFile(file)
				if err != nil {
					return err
				}
				avatar = loaded
			}
			if name != "" {
				avatar.Name = name
			}
			if niche != "" {
				avatar.Niche = niche
			}
			if style != "" {
				avatar.BaseStyle = style
			}

			store, err := a.openStore(ctx)
			if err != nil {
				return err
			}
			created, err := store.CreateAvatar(ctx, avatar)
			if err != nil {
				return err
			}

			return render(a.out, a.output, created, func(w io.Writer) error {
				_, err := fmt.Fprintln(w, created.ID)
				return err
			})
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "YAML file with nome, nicho and prompt_base")
	cmd.Flags().StringVar(&name, "name", "", "Avatar name")
	cmd.Flags().StringVar(&niche, "niche", "", "Avatar niche")
	cmd.Flags().StringVar(&style, "style", "", "Avatar base style")
	return cmd
}

func newAvatarListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored avatars",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := a.openStore(ctx)
			if err != nil {
				return err
			}
			avatars, err := store.ListAvatars(ctx)
			if err != nil {
				return err
			}
			if avatars == nil {
				avatars = []postgen.Avatar{}
			}

			return render(a.out, a.output, avatars, func(w io.Writer) error {
				tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "ID\tNAME\tNICHE\tSTYLE")
				for _, av := range avatars {
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", av.ID, av.Name, av.Niche, av.Style())
				}
				return tw.Flush()
			})
		},
	}
}

func newAvatarShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a stored avatar",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := a.openStore(ctx)
			if err != nil {
				return err
			}
			avatar, err := store.GetAvatar(ctx, args[0])
			if err != nil {
				return err
			}

			return render(a.out, a.output, avatar, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "ID:      %s\nName:    %s\nNiche:   %s\nStyle:   %s\nCreated: %s\n",
					avatar.ID, avatar.Name, avatar.Niche, avatar.Style(), avatar.CreatedAt.Format("2006-01-02 15:04"))
				return err
			})
		},
	}
}

func newAvatarRmCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a stored avatar",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := a.openStore(ctx)
			if err != nil {
				return err
			}
			return store.DeleteAvatar(ctx, args[0])
		},
	}
}
