// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(withGZip)
	router.Use(middleware.RequestSize(maxBodyBytes))

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/user/register", h.register)
		r.Post("/api/user/login", h.login)
		r.Get("/api/version", h.getServerVersion)
	})

	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Get("/api/profile", h.getProfile)
		r.Patch("/api/profile", h.updateProfile)

		r.Get("/api/users", h.searchUsers)
		r.Get("/api/users/{login}", h.findUser)
		r.Get("/api/groups", h.searchGroups)

		r.Route("/api/chats", func(r chi.Router) {
			r.Post("/", h.createChat)
			r.Get("/", h.listChats)

			r.Route("/{chatID}", func(r chi.Router) {
				r.Get("/", h.getChat)
				r.Patch("/", h.updateChat)
				r.Get("/key", h.getWrappedKey)
				r.Post("/read", h.markChatRead)

				r.Post("/members", h.addMember)
				r.Delete("/members/{userID}", h.removeMember)
				r.Post("/admins/{userID}", h.makeAdmin)

				r.Get("/messages", h.listMessages)
				r.Post("/messages", h.sendMessage)
				r.Delete("/messages", h.clearChat)
				r.Delete("/messages/{messageID}", h.deleteMessage)
				r.Post("/messages/{messageID}/receipts", h.markReceipt)

				r.Put("/media/{ownerID}/{kind}", h.uploadChunks)
				r.Get("/media/{ownerID}/{kind}", h.downloadChunks)
			})
		})

		r.Put("/api/public/{ownerID}", h.uploadPublic)
		r.Get("/api/public/{ownerID}", h.downloadPublic)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
