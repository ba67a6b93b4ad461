package wikitext

import (
	"crypto/md5"
	"encoding/hex"
	"net/url"
	"strings"
)

const commonsBase = "https://upload.wikimedia.org/wikipedia/commons/"

// URLForFile gets the wikimedia commons URL for the named file.
// Files live under directories named after the leading hex digits
// of the MD5 of their name.
func URLForFile(name string) string {
	name = strings.ReplaceAll(name, " ", "_")
	sum := md5.Sum([]byte(name))
	h := hex.EncodeToString(sum[:])
	return commonsBase + h[:1] + "/" + h[:2] + "/" + url.PathEscape(name)
}
