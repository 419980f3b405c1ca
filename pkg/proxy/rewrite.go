package proxy

import (
	"fmt"
	"net/url"
	"strings"
)

// RewriteURL substitutes the backend origin for the local origin,
// preserving sub-path and query string verbatim. inboundPath is the
// escaped form of the request path (url.URL.EscapedPath): its
// percent-encoded bytes reach the backend exactly as the browser sent
// them. The inbound path must fall under prefix.
func RewriteURL(origin, prefix, inboundPath, rawQuery string) (string, error) {
	if origin == "" {
		return "", ErrMissingOrigin
	}

	base, err := url.Parse(origin)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return "", fmt.Errorf("%w: %q", ErrMissingOrigin, origin)
	}

	if prefix != "" && !strings.HasPrefix(inboundPath, prefix) {
		return "", fmt.Errorf("%w: %q outside prefix %q", ErrPathOutsidePrefix, inboundPath, prefix)
	}

	escaped := strings.TrimSuffix(base.EscapedPath(), "/") + inboundPath
	unescaped, err := url.PathUnescape(escaped)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrPathOutsidePrefix, inboundPath)
	}

	target := *base
	target.Path = unescaped
	target.RawPath = escaped
	target.RawQuery = rawQuery
	return target.String(), nil
}
