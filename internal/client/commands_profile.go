// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/MKhiriev/sealed-chat/models"
	"github.com/spf13/cobra"
)

func (a *App) profileCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or edit your profile",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Show your profile",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				if _, err := a.session(cmd.Context()); err != nil {
					return err
				}
				user, err := a.services.UserService.GetProfile(cmd.Context())
				if err != nil {
					return err
				}
				a.printUser(user)
				return nil
			},
		},
		a.profileSetCommand(),
	)

	return cmd
}

func (a *App) profileSetCommand() *cobra.Command {
	var photo photoFlags
	var name string
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change your display name or photo",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := a.session(cmd.Context()); err != nil {
				return err
			}

			var req models.UpdateProfileRequest
			if cmd.Flags().Changed("name") {
				req.Name = &name
			}
			ref, err := photo.resolve(cmd, a)
			if err != nil {
				return err
			}
			req.PhotoURL = ref

			user, err := a.services.UserService.UpdateProfile(cmd.Context(), req)
			if err != nil {
				return err
			}
			a.printUser(user)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "display name")
	photo.bind(cmd)
	return cmd
}

// photoFlags selects a new photo either by reference or by a local file
// uploaded as public media first.
type photoFlags struct {
	ref  string
	file string
}

func (p *photoFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&p.ref, "photo", "", `photo reference or URL, "" removes the photo`)
	cmd.Flags().StringVar(&p.file, "photo-file", "", "image to upload as the new photo")
	cmd.MarkFlagsMutuallyExclusive("photo", "photo-file")
}

// resolve returns nil when the photo is left unchanged.
func (p *photoFlags) resolve(cmd *cobra.Command, a *App) (*string, error) {
	switch {
	case cmd.Flags().Changed("photo"):
		return &p.ref, nil
	case p.file != "":
		ref, err := a.uploadPhoto(cmd.Context(), p.file)
		if err != nil {
			return nil, err
		}
		return &ref, nil
	}
	return nil, nil
}

func (a *App) uploadPhoto(ctx context.Context, path string) (string, error) {
	file, err := readFile(path)
	if err != nil {
		return "", err
	}
	return a.services.MediaService.UploadPublic(ctx, file, nil)
}

func (a *App) usersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Look other users up",
	}

	var limit int
	search := &cobra.Command{
		Use:   "search <prefix>",
		Short: "Find users by login or name prefix",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.session(cmd.Context()); err != nil {
				return err
			}
			users, err := a.services.UserService.SearchUsers(cmd.Context(), args[0], limit)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
			_, _ = fmt.Fprintln(tw, "LOGIN\tNAME\tID")
			for _, user := range users {
				_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n", user.Login, user.Name, user.UserID)
			}
			_ = tw.Flush()
			return nil
		},
	}
	search.Flags().IntVar(&limit, "limit", 0, "maximum number of results")

	cmd.AddCommand(search)
	return cmd
}

func (a *App) printUser(user models.User) {
	a.printf("id:     %s\n", user.UserID)
	a.printf("login:  %s\n", user.Login)
	if user.Name != "" {
		a.printf("name:   %s\n", user.Name)
	}
	if user.PhotoURL != "" {
		a.printf("photo:  %s\n", user.PhotoURL)
	}
}
