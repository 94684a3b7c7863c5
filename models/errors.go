package models

import "errors"

var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrSlugTaken    = errors.New("slug already used on this publication date")
	ErrDelivery     = errors.New("mail delivery failed")
)
