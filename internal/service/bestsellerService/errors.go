package bestsellerService

import "errors"

var ErrNotConfigured = errors.New("bestseller feed is not configured")
