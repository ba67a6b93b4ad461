// Package wikitext pulls bits of structure out of article text:
// links, referenced files and geographic coordinates.
package wikitext

import (
	"regexp"
	"strings"
)

var commentRE, nowikiRE, linkRE, fileRE *regexp.Regexp

func init() {
	commentRE = regexp.MustCompile(`(?s)<!--.*?-->`)
	nowikiRE = regexp.MustCompile(`(?s)<nowiki>.*?</nowiki>`)
	linkRE = regexp.MustCompile(`\[\[([^|\]]+)`)
	fileRE = regexp.MustCompile(`(?i)\[\[\s*(?:file|image):([^|\]]+)`)
}

func stripNowiki(text string) string {
	return nowikiRE.ReplaceAllString(text, "")
}

func stripComments(text string) string {
	return commentRE.ReplaceAllString(text, "")
}

func submatches(re *regexp.Regexp, text string) []string {
	matches := re.FindAllStringSubmatch(text, -1)
	rv := make([]string, 0, len(matches))
	for _, m := range matches {
		rv = append(rv, strings.TrimSpace(m[1]))
	}
	return rv
}

// FindLinks finds the targets of all the links in an article,
// leaving out anything commented out or inside <nowiki>.
func FindLinks(text string) []string {
	return submatches(linkRE, stripNowiki(stripComments(text)))
}

// FindFiles finds all the files an article refers to.
//
// Unlike FindLinks this includes things in comments, as plenty of
// images are commented out rather than removed.
func FindFiles(text string) []string {
	return submatches(fileRE, stripNowiki(text))
}
