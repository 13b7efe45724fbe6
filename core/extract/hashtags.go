package extract

import "regexp"

var hashtagRegex = regexp.MustCompile(`#(\w+)`)

// Hashtags returns the tag bodies found in text, in order of appearance.
// Duplicates are kept. The result is never nil.
func Hashtags(text string) []string {
	matches := hashtagRegex.FindAllStringSubmatch(text, -1)
	tags := make([]string, 0, len(matches))
	for _, m := range matches {
		tags = append(tags, m[1])
	}
	return tags
}
