// Package tldoc gives the generic docsec model its task-log meaning: the
// status registry, the journal of sections read from a file, document
// attributes and the scrum view that regroups tasks by status.
//
// A document is parsed one line at a time. There is always a current section
// (the last in the journal) and, inside it, a current item. Headings open a
// new section unless the current one is still empty, and every other line is
// fed to the current section.
package tldoc
