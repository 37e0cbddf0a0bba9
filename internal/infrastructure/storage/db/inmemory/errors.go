package inmemory

import "errors"

var (
	// ErrMarketNotFound ...
	ErrMarketNotFound = errors.New("market not found")
	// ErrMarketAlreadyExists ...
	ErrMarketAlreadyExists = errors.New("market already exists")
)
