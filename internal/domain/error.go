package domain

import "errors"

var (
	// Common domain errors
	ErrNotFound           = errors.New("entity not found")
	ErrAlreadyExists      = errors.New("entity already exists")
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrMalformedVariantID = errors.New("variant id does not match gid://shopify/ProductVariant/<id>")
	ErrAppURLNotSet       = errors.New("public app url is not configured")
)
