// Package pipeline runs the daily tlog sequence over a journal tree.
//
// A run reads the last blotter, archives what was resolved, carries
// in-progress work into the new day, writes every task back to the story it
// came from, plans a sprint from the endeavor stories and writes the new
// blotter. Each step that changes the tree can be committed to git.
package pipeline
