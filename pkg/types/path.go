package types

import (
	"strconv"
	"strings"
)

// PathSeparator joins the segments of a materialized path.
const PathSeparator = "."

// RootPath returns the materialized path of a root todo, which is its own
// order number rendered as a string.
func RootPath(orderNumber int) string {
	return strconv.Itoa(orderNumber)
}

// ChildPath returns the materialized path of a todo placed under the given
// parent: the parent's path extended with the parent's id.
func ChildPath(parentPath string, parentID int64) string {
	return parentPath + PathSeparator + strconv.FormatInt(parentID, 10)
}

// IsAncestorPath reports whether nodePath lies inside the subtree rooted at
// the node with the given path and id. All descendants of a node carry its
// path extended with its id as a prefix; the comparison is segment-aware so
// that id 12 never matches a path built from id 123.
func IsAncestorPath(ancestorPath string, ancestorID int64, nodePath string) bool {
	base := ChildPath(ancestorPath, ancestorID)
	return nodePath == base || strings.HasPrefix(nodePath, base+PathSeparator)
}

// RebasePath rewrites a descendant path from one subtree prefix to another,
// preserving the remainder of the path unchanged. The caller guarantees that
// path begins with oldBase.
func RebasePath(path, oldBase, newBase string) string {
	return newBase + path[len(oldBase):]
}

// RootSegment parses the leading segment of a path as a root order number.
// The second return value is false when the path is empty or the leading
// segment is not a number.
func RootSegment(path string) (int, bool) {
	seg, _, _ := strings.Cut(path, PathSeparator)
	n, err := strconv.Atoi(seg)
	if err != nil {
		return 0, false
	}
	return n, true
}
