// Package endeavor connects story files on disk to the task documents parsed
// by tldoc. It stamps story files with the attributes that let a task find its
// way home (storySource, titleHash, storyName), writes tasks back into or
// removes them from their story, and exports the endeavor tree as a Domain of
// Endeavors, Stories and Tasks.
package endeavor
