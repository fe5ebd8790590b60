package repository

import "errors"

var (
	ErrRedisConnection  = errors.New("redis connection error")
	ErrInvalidItemData  = errors.New("invalid item data")
	ErrMissingItemOwner = errors.New("item has no user id or id")
)
