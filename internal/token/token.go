// Package token turns a book's remote identifier and download path into one
// opaque string suitable for a URL query value, and back. Tokens are not
// signed: anything in front of the catalog (the basic-auth gate) is trusted
// to keep them from strangers.
package token

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

var ErrMalformedToken = errors.New("malformed token")

const separator = ":"

// Encode joins the remote id and the percent-encoded download path with the
// separator. Percent-encoding the path guarantees the separator occurs only
// once, so Decode can split unambiguously.
func Encode(remoteID, downloadPath string) string {
	return remoteID + separator + url.QueryEscape(downloadPath)
}

func Decode(tok string) (remoteID, downloadPath string, err error) {
	parts := strings.SplitN(tok, separator, 2)
	if len(parts) != 2 || parts[0] == "" {
		return "", "", ErrMalformedToken
	}

	downloadPath, err = url.QueryUnescape(parts[1])
	if err != nil {
		return "", "", fmt.Errorf("%w: %s", ErrMalformedToken, err)
	}

	return parts[0], downloadPath, nil
}
