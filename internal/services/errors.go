package services

import "errors"

// Input errors. Handlers map these to 400.
var (
	ErrInvalidStatus    = errors.New("invalid status")
	ErrInvalidAmount    = errors.New("amount must be finite and non-negative")
	ErrInvalidAssetType = errors.New("asset_type must be digital or physical")
)
