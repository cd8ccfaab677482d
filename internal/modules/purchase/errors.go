package purchase

import "errors"

var (
	ErrNotFound      = errors.New("purchase order not found")
	ErrProjectGone   = errors.New("project not found")
	ErrInvalidStatus = errors.New("unknown purchase order status")
)
