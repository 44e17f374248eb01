// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"bufio"
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/MKhiriev/sealed-chat/models"
	"github.com/spf13/cobra"
)

func (a *App) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "sealed-chat",
		Short:         "End-to-end encrypted chat client",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		a.registerCommand(),
		a.loginCommand(),
		a.logoutCommand(),
		a.whoamiCommand(),
		a.pingCommand(),
		a.profileCommand(),
		a.usersCommand(),
		a.chatCommand(),
		a.sendCommand(),
		a.messagesCommand(),
		a.readCommand(),
		a.deleteCommand(),
		a.clearCommand(),
		a.mediaCommand(),
		a.publicCommand(),
	)

	return root
}

// ─────────────────────────────────────────────
// account
// ─────────────────────────────────────────────

type credentials struct {
	login    string
	password string
	name     string
}

func (c *credentials) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&c.login, "login", "l", "", "account login")
	cmd.Flags().StringVarP(&c.password, "password", "p", "", "account password, read from stdin when empty")
	_ = cmd.MarkFlagRequired("login")
}

// user reads a missing password from the first stdin line.
func (c *credentials) user(cmd *cobra.Command) (models.User, error) {
	if c.password == "" {
		line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if err != nil && line == "" {
			return models.User{}, errors.New("password is required")
		}
		c.password = strings.TrimRight(line, "\r\n")
	}
	return models.User{Login: c.login, Password: c.password, Name: c.name}, nil
}

func (a *App) registerCommand() *cobra.Command {
	var creds credentials
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and log in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			user, err := creds.user(cmd)
			if err != nil {
				return err
			}
			session, err := a.services.AuthService.Register(cmd.Context(), user)
			if err != nil {
				return err
			}
			a.printf("registered %s (%s)\n", session.Login, session.UserID)
			return nil
		},
	}
	creds.bind(cmd)
	cmd.Flags().StringVar(&creds.name, "name", "", "display name")
	return cmd
}

func (a *App) loginCommand() *cobra.Command {
	var creds credentials
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and remember the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			user, err := creds.user(cmd)
			if err != nil {
				return err
			}
			session, err := a.services.AuthService.Login(cmd.Context(), user)
			if err != nil {
				return err
			}
			a.printf("logged in as %s (%s)\n", session.Login, session.UserID)
			return nil
		},
	}
	creds.bind(cmd)
	return cmd
}

func (a *App) logoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.services.AuthService.Logout(cmd.Context()); err != nil {
				return err
			}
			a.services.KeyCache.Clear()
			a.printf("logged out\n")
			return nil
		},
	}
}

func (a *App) whoamiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			session, err := a.session(cmd.Context())
			if err != nil {
				return err
			}
			a.printf("%s (%s)\n", session.Login, session.UserID)
			return nil
		},
	}
}

func (a *App) pingCommand() *cobra.Command {
	var service string
	cmd := &cobra.Command{
		Use:   "ping",
		Short: "Check the server over gRPC health",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if a.health == nil {
				return errors.New("gRPC address is not configured")
			}
			status, err := a.health.Check(cmd.Context(), service)
			if err != nil {
				return err
			}
			a.printf("%s\n", status)
			return nil
		},
	}
	cmd.Flags().StringVar(&service, "service", "", "health service name")
	return cmd
}

// ─────────────────────────────────────────────
// chats
// ─────────────────────────────────────────────

func (a *App) chatCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Create and manage chats",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "direct <login>",
			Short: "Open the direct chat with a user",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				session, err := a.session(cmd.Context())
				if err != nil {
					return err
				}
				chat, err := a.services.ChatService.CreateDirectChat(cmd.Context(), session.UserID, args[0])
				if err != nil {
					return err
				}
				a.printf("%s\n", chat.ChatID)
				return nil
			},
		},
		a.chatGroupCommand(),
		&cobra.Command{
			Use:   "list",
			Short: "List your chats",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				session, err := a.session(cmd.Context())
				if err != nil {
					return err
				}
				chats, err := a.services.ChatService.ListChats(cmd.Context())
				if err != nil {
					return err
				}
				a.printChats(chats, session.UserID, time.Now())
				return nil
			},
		},
		&cobra.Command{
			Use:   "show <chat-id>",
			Short: "Show chat details",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if _, err := a.session(cmd.Context()); err != nil {
					return err
				}
				chat, err := a.services.ChatService.GetChat(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				a.printChat(chat)
				return nil
			},
		},
		&cobra.Command{
			Use:   "add <chat-id> <login>",
			Short: "Add a member to a group",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				session, err := a.session(cmd.Context())
				if err != nil {
					return err
				}
				if err = a.services.ChatService.AddParticipant(cmd.Context(), session.UserID, args[0], args[1]); err != nil {
					return err
				}
				a.printf("added %s\n", args[1])
				return nil
			},
		},
		&cobra.Command{
			Use:   "remove <chat-id> <login>",
			Short: "Remove a member from a group",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				if _, err := a.session(cmd.Context()); err != nil {
					return err
				}
				if err := a.services.ChatService.RemoveParticipant(cmd.Context(), args[0], args[1]); err != nil {
					return err
				}
				a.printf("removed %s\n", args[1])
				return nil
			},
		},
		&cobra.Command{
			Use:   "admin <chat-id> <login>",
			Short: "Make a member a group admin",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				if _, err := a.session(cmd.Context()); err != nil {
					return err
				}
				if err := a.services.ChatService.MakeAdmin(cmd.Context(), args[0], args[1]); err != nil {
					return err
				}
				a.printf("%s is now an admin\n", args[1])
				return nil
			},
		},
		a.chatEditCommand(),
		a.chatSearchCommand(),
	)

	return cmd
}

func (a *App) chatGroupCommand() *cobra.Command {
	var (
		name        string
		description string
		members     []string
	)
	cmd := &cobra.Command{
		Use:   "group",
		Short: "Create a group chat",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			session, err := a.session(cmd.Context())
			if err != nil {
				return err
			}
			chat, err := a.services.ChatService.CreateGroupChat(cmd.Context(), session.UserID, name, description, members)
			if err != nil {
				return err
			}
			a.printf("%s\n", chat.ChatID)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "group name")
	cmd.Flags().StringVar(&description, "description", "", "group description")
	cmd.Flags().StringSliceVarP(&members, "member", "m", nil, "member login, repeatable")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func (a *App) chatEditCommand() *cobra.Command {
	var (
		name        string
		description string
		photo       photoFlags
	)
	cmd := &cobra.Command{
		Use:   "edit <chat-id>",
		Short: "Change the name, description or photo of a group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.session(cmd.Context()); err != nil {
				return err
			}

			var req models.UpdateChatRequest
			if cmd.Flags().Changed("name") {
				req.Name = &name
			}
			if cmd.Flags().Changed("description") {
				req.Description = &description
			}
			ref, err := photo.resolve(cmd, a)
			if err != nil {
				return err
			}
			req.PhotoURL = ref
			if req.Empty() {
				return errors.New("nothing to change, pass --name, --description or a photo")
			}

			chat, err := a.services.ChatService.UpdateGroup(cmd.Context(), args[0], req)
			if err != nil {
				return err
			}
			a.printChat(chat)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "group name")
	cmd.Flags().StringVar(&description, "description", "", "group description")
	photo.bind(cmd)
	return cmd
}

func (a *App) chatSearchCommand() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "search <prefix>",
		Short: "Find groups by name prefix",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.session(cmd.Context()); err != nil {
				return err
			}
			groups, err := a.services.ChatService.SearchGroups(cmd.Context(), args[0], limit)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
			_, _ = fmt.Fprintln(tw, "CHAT\tNAME\tABOUT")
			for _, group := range groups {
				_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n", group.ChatID, group.Name, group.Description)
			}
			_ = tw.Flush()
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of results")
	return cmd
}

func (a *App) printChats(chats []models.Chat, me string, now time.Time) {
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "CHAT\tKIND\tNAME\tMEMBERS\tUNREAD\tSTREAK")
	for _, chat := range chats {
		kind := "direct"
		if chat.IsGroup {
			kind = "group"
		}
		streak := "-"
		if !chat.IsGroup {
			streak = fmt.Sprint(chat.CurrentStreak(now))
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%s\n",
			chat.ChatID, kind, chat.Name, len(chat.Members), chat.UnreadCounts[me], streak)
	}
	_ = tw.Flush()
}

func (a *App) printChat(chat models.Chat) {
	a.printf("id:       %s\n", chat.ChatID)
	if chat.IsGroup {
		a.printf("name:     %s\n", chat.Name)
		if chat.Description != "" {
			a.printf("about:    %s\n", chat.Description)
		}
		if chat.PhotoURL != "" {
			a.printf("photo:    %s\n", chat.PhotoURL)
		}
		a.printf("admins:   %s\n", strings.Join(chat.Admins, ", "))
	}
	a.printf("members:  %s\n", strings.Join(chat.Members, ", "))
	a.printf("created:  %s\n", chat.CreatedAt.Format(time.RFC3339))
}

// ─────────────────────────────────────────────
// messages
// ─────────────────────────────────────────────

func (a *App) sendCommand() *cobra.Command {
	var replyTo string
	cmd := &cobra.Command{
		Use:   "send <chat-id> <text>",
		Short: "Send an encrypted text message",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := a.session(cmd.Context())
			if err != nil {
				return err
			}
			text := strings.Join(args[1:], " ")
			msg, err := a.services.MessageService.SendMessage(cmd.Context(), session.UserID, args[0], text, replyTo)
			if err != nil {
				return err
			}
			a.printf("%s\n", msg.MessageID)
			return nil
		},
	}
	cmd.Flags().StringVar(&replyTo, "reply-to", "", "id of the message to reply to")
	return cmd
}

func (a *App) messagesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "messages <chat-id>",
		Short: "Print the decrypted messages of a chat",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := a.session(cmd.Context())
			if err != nil {
				return err
			}
			messages, err := a.services.MessageService.ListMessages(cmd.Context(), session.UserID, args[0])
			if err != nil {
				return err
			}
			for _, msg := range messages {
				a.printMessage(msg)
			}

			// a failed receipt never hides the listing
			if _, err = a.services.MessageService.MarkDelivered(cmd.Context(), session.UserID, args[0], messages); err != nil {
				a.logger.Warn().Err(err).Str("chat_id", args[0]).Msg("delivery receipts not sent")
			}
			return nil
		},
	}
}

func (a *App) readCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "read <chat-id>",
		Short: "Mark the messages of a chat as read",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := a.session(cmd.Context())
			if err != nil {
				return err
			}
			marked, err := a.services.MessageService.MarkChatRead(cmd.Context(), session.UserID, args[0])
			if err != nil {
				return err
			}
			a.printf("marked %d messages read\n", marked)
			return nil
		},
	}
}

func (a *App) printMessage(msg models.DecryptedMessage) {
	line := msg.Text
	if msg.Media != nil {
		line = strings.TrimSpace(fmt.Sprintf("[%s %s, %d chunks] %s", msg.Type, msg.Media.MimeType, msg.Media.ChunkCount, msg.Text))
	}
	reply := ""
	if msg.ReplyTo != "" {
		reply = " re:" + msg.ReplyTo
	}
	a.printf("%s %s %s%s: %s%s\n", msg.CreatedAt.Local().Format("2006-01-02 15:04"), msg.MessageID, msg.SenderID, reply, line, receiptMark(msg.Message))
}

// receiptMark renders the delivery state of a message the way messengers
// do: one tick once delivered to someone, two once read by someone.
func receiptMark(msg models.Message) string {
	switch {
	case len(msg.ReadBy) > 0:
		return " ✓✓"
	case len(msg.DeliveredTo) > 0:
		return " ✓"
	}
	return ""
}

func (a *App) deleteCommand() *cobra.Command {
	var forMe bool
	cmd := &cobra.Command{
		Use:   "delete <chat-id> <message-id>",
		Short: "Delete a message",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.session(cmd.Context()); err != nil {
				return err
			}
			if forMe {
				if err := a.services.MessageService.HideMessage(cmd.Context(), args[0], args[1]); err != nil {
					return err
				}
				a.printf("deleted for you\n")
				return nil
			}
			if err := a.services.MessageService.DeleteMessage(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			a.printf("deleted\n")
			return nil
		},
	}
	cmd.Flags().BoolVar(&forMe, "me", false, "delete only from your own view")
	return cmd
}

func (a *App) clearCommand() *cobra.Command {
	var forMe bool
	cmd := &cobra.Command{
		Use:   "clear <chat-id>",
		Short: "Delete every message of a chat",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.session(cmd.Context()); err != nil {
				return err
			}
			if forMe {
				if err := a.services.MessageService.ClearHistory(cmd.Context(), args[0]); err != nil {
					return err
				}
				a.printf("history cleared for you\n")
				return nil
			}
			deleted, err := a.services.MessageService.ClearChat(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			a.printf("deleted %d messages\n", deleted)
			return nil
		},
	}
	cmd.Flags().BoolVar(&forMe, "me", false, "clear only your own view of the history")
	return cmd
}
