// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/MKhiriev/sealed-chat/internal/utils"
	"github.com/MKhiriev/sealed-chat/models"
)

const (
	FieldLogin    = "login"
	FieldPassword = "password"
	FieldName     = "name"
	FieldPhotoURL = "photo_url"
	FieldQuery    = "query"
)

const (
	maxLoginLength    = 64
	maxNameLength     = 128
	maxPhotoURLLength = 2048
	maxQueryLength    = 64
)

// UserValidator validates register, login, profile and search requests.
type UserValidator struct{}

// NewUserValidator constructs a [UserValidator].
func NewUserValidator() Validator {
	return &UserValidator{}
}

func (v *UserValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.User:
		return v.validateUser(ctx, value, fields...)
	case *models.User:
		return v.validateUser(ctx, *value, fields...)
	case models.UpdateProfileRequest:
		return v.validateProfile(value, fields...)
	case models.SearchRequest:
		return validateSearch(value)
	default:
		return ErrUnsupportedType
	}
}

func (v *UserValidator) validateUser(ctx context.Context, user models.User, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldLogin, FieldPassword, FieldName}
	}

	for _, f := range fields {
		switch f {
		case FieldLogin:
			login := strings.TrimSpace(user.Login)
			if login == "" || login != user.Login || len(login) > maxLoginLength || strings.ContainsAny(login, "/ ") {
				return ErrInvalidLogin
			}
		case FieldPassword:
			if user.Password == "" {
				return ErrInvalidPassword
			}
		case FieldName:
			if len(user.Name) > maxNameLength {
				return ErrInvalidName
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *UserValidator) validateProfile(req models.UpdateProfileRequest, fields ...string) error {
	if req.Empty() {
		return ErrNothingToUpdate
	}
	if len(fields) == 0 {
		fields = []string{FieldName, FieldPhotoURL}
	}

	for _, f := range fields {
		switch f {
		case FieldName:
			if req.Name != nil && !validDisplayName(*req.Name) {
				return ErrInvalidName
			}
		case FieldPhotoURL:
			if req.PhotoURL != nil && !validPhotoURL(*req.PhotoURL) {
				return ErrInvalidPhotoURL
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func validateSearch(req models.SearchRequest) error {
	q := strings.TrimSpace(req.Query)
	if q == "" || q != req.Query || utf8.RuneCountInString(q) > maxQueryLength || req.Limit < 0 {
		return ErrInvalidSearchQuery
	}
	return nil
}

// validDisplayName accepts a non-blank name without surrounding spaces.
func validDisplayName(name string) bool {
	trimmed := strings.TrimSpace(name)
	return trimmed != "" && trimmed == name && utf8.RuneCountInString(name) <= maxNameLength
}

// validPhotoURL accepts an empty string (photo removed), a public media
// reference or an http(s) URL.
func validPhotoURL(raw string) bool {
	if raw == "" {
		return true
	}
	if len(raw) > maxPhotoURLLength {
		return false
	}
	if ref, ok := strings.CutPrefix(raw, "store://"); ok {
		return utils.IsUUID(ref)
	}

	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
