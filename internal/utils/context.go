package utils

import "context"

// GetString reads a string value from the context, reporting presence.
func GetString(ctx context.Context, key any) (string, bool) {
	v := ctx.Value(key)
	s, ok := v.(string)
	return s, ok
}
