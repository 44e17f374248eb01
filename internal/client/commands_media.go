// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/MKhiriev/sealed-chat/internal/crypto"
	"github.com/MKhiriev/sealed-chat/internal/service"
	"github.com/MKhiriev/sealed-chat/internal/store"
	"github.com/MKhiriev/sealed-chat/models"
	"github.com/spf13/cobra"
)

func (a *App) mediaCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "media",
		Short: "Send and fetch encrypted images and videos",
	}
	cmd.AddCommand(a.mediaSendCommand(), a.mediaGetCommand())
	return cmd
}

func (a *App) mediaSendCommand() *cobra.Command {
	var (
		caption   string
		thumbnail string
		replyTo   string
	)
	cmd := &cobra.Command{
		Use:   "send <chat-id> <file>",
		Short: "Encrypt a file and send it as a media message",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := a.session(cmd.Context())
			if err != nil {
				return err
			}

			file, err := readFile(args[1])
			if err != nil {
				return err
			}
			upload := service.MediaUpload{File: file, Caption: caption, ReplyTo: replyTo}
			if thumbnail != "" {
				thumb, err := readFile(thumbnail)
				if err != nil {
					return err
				}
				upload.Thumbnail = &thumb
			}

			msg, err := a.services.MediaService.SendMediaMessage(cmd.Context(), session.UserID, args[0], upload, a.progress())
			if err != nil {
				return err
			}
			a.printf("\n%s\n", msg.MessageID)
			return nil
		},
	}
	cmd.Flags().StringVar(&caption, "caption", "", "encrypted caption")
	cmd.Flags().StringVar(&thumbnail, "thumbnail", "", "thumbnail image, videos only")
	cmd.Flags().StringVar(&replyTo, "reply-to", "", "id of the message to reply to")
	return cmd
}

func (a *App) mediaGetCommand() *cobra.Command {
	var (
		out       string
		thumbnail bool
	)
	cmd := &cobra.Command{
		Use:   "get <chat-id> <message-id>",
		Short: "Download and decrypt the media of a message",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := a.session(cmd.Context())
			if err != nil {
				return err
			}
			msg, err := a.findMessage(cmd.Context(), session.UserID, args[0], args[1])
			if err != nil {
				return err
			}

			var data []byte
			if thumbnail {
				data, err = a.services.MediaService.DownloadThumbnail(cmd.Context(), session.UserID, msg)
			} else {
				var file crypto.File
				file, err = a.services.MediaService.DownloadMedia(cmd.Context(), session.UserID, msg)
				data = file.Data
			}
			if err != nil {
				return err
			}

			if out == "" {
				out = msg.MessageID + extensionOf(msg.Media.MimeType, thumbnail)
			}
			if err = os.WriteFile(out, data, 0o600); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}
			a.printf("%s (%d bytes)\n", out, len(data))
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file")
	cmd.Flags().BoolVar(&thumbnail, "thumbnail", false, "fetch the video thumbnail instead")
	return cmd
}

func (a *App) publicCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "public",
		Short: "Store and fetch unencrypted public media such as avatars",
	}

	var out string
	get := &cobra.Command{
		Use:   "get <store-ref>",
		Short: "Download public media",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.session(cmd.Context()); err != nil {
				return err
			}
			data, err := a.services.MediaService.DownloadPublic(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if out == "" {
				out = strings.TrimPrefix(args[0], models.PublicMediaRef(""))
			}
			if err = os.WriteFile(out, data, 0o600); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}
			a.printf("%s (%d bytes)\n", out, len(data))
			return nil
		},
	}
	get.Flags().StringVarP(&out, "out", "o", "", "output file")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "upload <file>",
			Short: "Upload public media and print its reference",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if _, err := a.session(cmd.Context()); err != nil {
					return err
				}
				file, err := readFile(args[0])
				if err != nil {
					return err
				}
				ref, err := a.services.MediaService.UploadPublic(cmd.Context(), file, a.progress())
				if err != nil {
					return err
				}
				a.printf("\n%s\n", ref)
				return nil
			},
		},
		get,
	)
	return cmd
}

// findMessage looks a message up in the decrypted listing of its chat; the
// media metadata lives on the message.
func (a *App) findMessage(ctx context.Context, me, chatID, messageID string) (models.Message, error) {
	messages, err := a.services.MessageService.ListMessages(ctx, me, chatID)
	if err != nil {
		return models.Message{}, err
	}
	for _, msg := range messages {
		if msg.MessageID == messageID {
			return msg.Message, nil
		}
	}
	return models.Message{}, store.ErrMessageNotFound
}

// progress prints the upload percentage on one line.
func (a *App) progress() service.ProgressFunc {
	return func(percent int) {
		a.printf("\rupload %3d%%", percent)
	}
}

func readFile(path string) (crypto.File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return crypto.File{}, fmt.Errorf("read %s: %w", path, err)
	}
	return crypto.File{
		Name:     filepath.Base(path),
		MimeType: mimeTypeOf(path, data),
		Data:     data,
	}, nil
}

// mimeTypeOf trusts a known extension and sniffs the content otherwise.
func mimeTypeOf(path string, data []byte) string {
	mimeType := mime.TypeByExtension(strings.ToLower(filepath.Ext(path)))
	if mimeType == "" {
		mimeType = http.DetectContentType(data)
	}
	mimeType, _, _ = strings.Cut(mimeType, ";")
	return strings.TrimSpace(mimeType)
}

func extensionOf(mimeType string, thumbnail bool) string {
	if thumbnail {
		return ".thumb"
	}
	exts, err := mime.ExtensionsByType(mimeType)
	if err != nil || len(exts) == 0 {
		return ".bin"
	}
	return exts[0]
}
