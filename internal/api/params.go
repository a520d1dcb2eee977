package api

import (
	"net/url"
	"strconv"

	"github.com/Kerhoff/storehouse/internal/repository"
)

// parsePage reads skip and limit. limit is capped at repository.MaxLimit.
func parsePage(q url.Values, c *checks) repository.Page {
	page := repository.Page{Offset: 0, Limit: repository.DefaultLimit}

	if raw := q.Get("skip"); raw != "" {
		n, err := strconv.Atoi(raw)
		switch {
		case err != nil:
			c.fail("skip", "must be an integer")
		case n < 0:
			c.fail("skip", "must not be negative")
		default:
			page.Offset = n
		}
	}

	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		switch {
		case err != nil:
			c.fail("limit", "must be an integer")
		case n < 1 || n > repository.MaxLimit:
			c.fail("limit", "must be between 1 and %d", repository.MaxLimit)
		default:
			page.Limit = n
		}
	}

	return page
}

// Query filters treat an empty value (?status=) the same as an absent key.

func queryString(q url.Values, key string) *string {
	v := q.Get(key)
	if v == "" {
		return nil
	}
	return &v
}

func queryInt64(q url.Values, key string, c *checks) *int64 {
	raw := q.Get(key)
	if raw == "" {
		return nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		c.fail(key, "must be an integer")
		return nil
	}
	return &n
}

func queryBool(q url.Values, key string, c *checks) *bool {
	raw := q.Get(key)
	if raw == "" {
		return nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		c.fail(key, "must be a boolean")
		return nil
	}
	return &b
}

// queryEnum reads a string filter into a named enum type and checks it.
func queryEnum[T ~string](q url.Values, key string, valid func(T) bool, c *checks) *T {
	v := T(q.Get(key))
	if v == "" {
		return nil
	}
	if !valid(v) {
		c.fail(key, "invalid value %q", string(v))
		return nil
	}
	return &v
}
