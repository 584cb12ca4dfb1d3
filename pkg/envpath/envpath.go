// Package envpath maintains the persistent PATH environment list on
// behalf of the installer lifecycle hooks.
//
// The PATH value is a semicolon-delimited ordered sequence of directory
// strings. Entries compare case-insensitively and matching is
// delimiter-bounded, so `C:\a\b` never matches inside `C:\a\bc`.
// No normalization of separators, trailing slashes, or
// relative-vs-absolute form is performed; this mirrors how Windows
// itself treats the value. An entry added with one exact string and
// later removed with a differently-formatted but logically-equivalent
// string will not match.
package envpath

import "strings"

// ListSeparator separates entries in the PATH value.
const ListSeparator = ";"

// ValueName is the registry value holding the PATH list, in the native
// Windows casing.
const ValueName = "Path"

// Split breaks a PATH list into its entries. Entries are returned
// verbatim, including empty segments, so that Join(Split(s)) == s.
func Split(list string) []string {
	if list == "" {
		return nil
	}
	return strings.Split(list, ListSeparator)
}

// Join assembles entries back into a PATH list.
func Join(entries []string) string {
	return strings.Join(entries, ListSeparator)
}

// Index returns the position of dir in the list, comparing entries
// case-insensitively, or -1 if the list does not contain dir.
func Index(list, dir string) int {
	for i, entry := range Split(list) {
		if strings.EqualFold(entry, dir) {
			return i
		}
	}
	return -1
}

// Contains reports whether the list holds dir as a whole entry.
func Contains(list, dir string) bool {
	return Index(list, dir) >= 0
}

// Append returns the list with dir appended, unless the list already
// contains dir, in which case the list is returned unchanged.
func Append(list, dir string) string {
	if list == "" {
		return dir
	}
	if Contains(list, dir) {
		return list
	}
	return list + ListSeparator + dir
}

// Remove returns the list with the first occurrence of dir removed,
// along with its adjacent separator. Lists without dir come back
// unchanged.
func Remove(list, dir string) string {
	idx := Index(list, dir)
	if idx < 0 {
		return list
	}
	entries := Split(list)
	return Join(append(entries[:idx], entries[idx+1:]...))
}
