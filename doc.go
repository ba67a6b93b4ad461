// Package wiki2json turns the wikipedia xml dump format into JSON
// lines, one object per page.
//
// The dumps are available from the wikimedia group here:
//    http://dumps.wikimedia.org/
//
// A dump is consumed a line at a time and never decoded into a tree,
// so memory use depends on the size of the page being converted and
// not on the size of the dump.  Everything outside <page> elements
// (the <mediawiki> root and <siteinfo>) is ignored.
//
// Element names become keys, nesting becomes object nesting, and
// values are typed by name: ns and anything ending in "id" are
// integers, timestamp is seconds since the epoch, empty elements are
// true, everything else is a string.
//
// See the programs in the tools subpackages for how the output gets
// checked, split and loaded into various document stores.
package wiki2json
