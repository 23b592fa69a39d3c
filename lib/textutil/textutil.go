package textutil

import (
	"regexp"
	"strings"
)

var innerWhitespace = regexp.MustCompile(`\s+`)

// ProviderSlug turns a display name like "Amazon Bedrock" into a stable
// identifier like "amazon_bedrock".
func ProviderSlug(name string) string {
	name = strings.ToLower(name)
	name = strings.Trim(name, " \n\t")
	name = innerWhitespace.ReplaceAllString(name, "_")
	return name
}
