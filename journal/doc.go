// Package journal holds everything tlog does with the file system: the journal
// tree layout, daily file names, reading and atomic writing of documents,
// directory scans, story directories and git commits of the journal tree.
//
// Layout:
//
//	<root>/YYYY/MM/blotter-YYYY-MM-DD.md      today's working view
//	<root>/YYYY/MM/resolved/resolved-*.md    resolved tasks per day
//	<endeavors>/endeavors.md                 "name [maxStories]" per line
//	<endeavors>/<name>/*story.md             story documents
//	<endeavors>/<name>/prioritized.md        optional story order
//	<tmp>/old                                blotters moved aside
//	<tmp>/tl.debug.log                       debug log
package journal
