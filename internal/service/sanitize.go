package service

import "github.com/microcosm-cc/bluemonday"

// contentPolicy keeps common user formatting and strips scripts and event
// handlers. Applied on every write path, so stored content is always safe.
var contentPolicy = bluemonday.UGCPolicy()

func sanitizeContent(content string) string {
	return contentPolicy.Sanitize(content)
}
