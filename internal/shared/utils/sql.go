package utils

import "strings"

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ContainsPattern turns a user keyword into an ILIKE pattern matching it as a
// literal substring. Blank keywords return "".
func ContainsPattern(keyword string) string {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return ""
	}
	return "%" + likeEscaper.Replace(keyword) + "%"
}
