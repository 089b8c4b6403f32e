// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package pagination splits ordered lists into pages addressed by opaque
// keyset tokens.
package pagination

import (
	"encoding/base64"
	"encoding/json"
	"net/url"
	"strconv"

	"github.com/danielhkuo/quickly-survey/apperr"
)

// Query parameters consumed by the listing layer.
const (
	ParamPageSize  = "page_size"
	ParamPageToken = "page_token"
)

// PageSizeConfig bounds page sizes.
type PageSizeConfig struct {
	Default int
	Max     int
}

// ClampPageSize applies the default for unset values and caps at Max.
func ClampPageSize(value int, cfg PageSizeConfig) int {
	pageSize := value
	if pageSize <= 0 {
		pageSize = cfg.Default
	}
	if cfg.Max > 0 && pageSize > cfg.Max {
		pageSize = cfg.Max
	}
	if pageSize <= 0 {
		pageSize = 1
	}
	return pageSize
}

// Cursor names the last item of a page: its sort time (0 when the list is
// ordered by id alone) and id.
type Cursor struct {
	T  int64 `json:"t,omitempty"`
	ID int64 `json:"id"`
}

// after reports whether c sorts strictly after o.
func (c Cursor) after(o Cursor) bool {
	if c.T != o.T {
		return c.T > o.T
	}
	return c.ID > o.ID
}

// EncodeToken renders c as an opaque page token.
func EncodeToken(c Cursor) string {
	b, _ := json.Marshal(c)
	return base64.RawURLEncoding.EncodeToString(b)
}

// DecodeToken parses a token produced by EncodeToken.
func DecodeToken(token string) (Cursor, error) {
	var c Cursor
	b, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return c, apperr.Wrap(apperr.CodeInvalidPageToken, "page token is not valid base64", err)
	}
	if err := json.Unmarshal(b, &c); err != nil {
		return c, apperr.Wrap(apperr.CodeInvalidPageToken, "page token is malformed", err)
	}
	if c.ID <= 0 {
		return c, apperr.New(apperr.CodeInvalidPageToken, "page token has no id")
	}
	return c, nil
}

// Request is a parsed page request.
type Request struct {
	Size  int
	After *Cursor
}

// ParseRequest reads page_size and page_token from params and removes them so
// the remaining parameters can be handed to resource filters.
func ParseRequest(params url.Values, cfg PageSizeConfig) (Request, error) {
	req := Request{Size: ClampPageSize(0, cfg)}

	if raw := params.Get(ParamPageSize); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return Request{}, apperr.Newf(apperr.CodeInvalidQueryValue, "page_size must be an integer, got %q", raw)
		}
		req.Size = ClampPageSize(n, cfg)
	}
	if raw := params.Get(ParamPageToken); raw != "" {
		c, err := DecodeToken(raw)
		if err != nil {
			return Request{}, err
		}
		req.After = &c
	}

	params.Del(ParamPageSize)
	params.Del(ParamPageToken)
	return req, nil
}

// Paginate returns the page of items following req.After and the cursor of
// the page's last item when more items remain. items must already be sorted
// in the order key describes.
func Paginate[T any](items []T, req Request, key func(T) Cursor) ([]T, *Cursor) {
	start := 0
	if req.After != nil {
		for start < len(items) && !key(items[start]).after(*req.After) {
			start++
		}
	}

	end := start + req.Size
	if end >= len(items) {
		return items[start:], nil
	}
	next := key(items[end-1])
	return items[start:end], &next
}

// NextLink builds the URL of the following page from the current request URL.
func NextLink(current *url.URL, next Cursor) string {
	u := *current
	q := u.Query()
	q.Set(ParamPageToken, EncodeToken(next))
	u.RawQuery = q.Encode()
	return u.String()
}
