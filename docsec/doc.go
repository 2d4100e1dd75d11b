// Package docsec provides the generic building blocks of a line-oriented
// task document: attributes, items, sections and a classifier that routes
// items into named sections by their leader.
//
// Nothing in this package knows what a leader means. The Grammar passed to
// every constructor carries the heading and leader patterns, and callers such
// as the tldoc package attach the semantics.
//
// Text layout:
//
//	# Heading              section header (matches the heading pattern)
//	d - title              item top (matches the leader grammar)
//	key:value              attribute of the current item
//	 - free text           sub line of the current item
package docsec
