package model

import "regexp"

// Usernames are opaque identifiers, not credentials: CJK ideographs, latin
// letters, digits, underscore and hyphen, at most 30 runes.
var userIDPattern = regexp.MustCompile(`^[\p{Han}A-Za-z0-9_-]{1,30}$`)

// ValidUserID reports whether id is an acceptable user identifier.
func ValidUserID(id string) bool {
	return userIDPattern.MatchString(id)
}
