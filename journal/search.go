package journal

import (
	"fmt"
	"path/filepath"
	"strconv"
)

// SearchStatus tells the caller how to continue after a search.
type SearchStatus int

const (
	// SearchSuccess means the result can be used by the next step.
	SearchSuccess SearchStatus = iota
	// SearchStop means nothing failed but there is nothing to continue with.
	SearchStop
	// SearchFailed means the search itself went wrong.
	SearchFailed
)

func (s SearchStatus) String() string {
	switch s {
	case SearchSuccess:
		return "success"
	case SearchStop:
		return "stop"
	case SearchFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// SearchResult reports a directory search.
type SearchResult struct {
	Status  SearchStatus
	Dir     string
	Message string
}

// Err returns ErrNoJournalDir for a stopped search and nil otherwise.
func (r SearchResult) Err() error {
	if r.Status == SearchSuccess {
		return nil
	}
	return fmt.Errorf("%s: %w", r.Message, ErrNoJournalDir)
}

// PriorMonthDir returns the YYYY/MM directory before dir, which must end in
// YYYY/MM. It returns "" for paths that do not, and before year 1.
func PriorMonthDir(dir string) string {
	dir = filepath.Clean(dir)
	if dir == string(filepath.Separator) {
		return ""
	}
	yearPath, monthPart := filepath.Split(dir)
	yearPath = filepath.Clean(yearPath)
	basePath, yearPart := filepath.Split(yearPath)
	if len(monthPart) != 2 {
		return ""
	}
	month, err := strconv.Atoi(monthPart)
	if err != nil || month < 1 || month > 12 {
		return ""
	}
	year, err := strconv.Atoi(yearPart)
	if err != nil {
		return ""
	}
	month--
	if month == 0 {
		month = 12
		year--
	}
	if year <= 0 {
		return ""
	}
	return filepath.Join(basePath, fmt.Sprintf("%04d", year), fmt.Sprintf("%02d", month))
}

// FindPrevJournalDir walks back from latestDir one month at a time, at most
// months directories, and returns the first one holding stories or blotters.
func FindPrevJournalDir(latestDir string, months int) SearchResult {
	result := SearchResult{
		Status:  SearchStop,
		Dir:     latestDir,
		Message: fmt.Sprintf("No previous Journal Dir was found looking back %d months.", months),
	}
	dir := latestDir
	for remaining := months; remaining > 0 && dir != ""; remaining-- {
		stories, err := FileNamesByPattern(dir, StoryGlob)
		if err != nil {
			return SearchResult{Status: SearchFailed, Dir: dir, Message: err.Error()}
		}
		blotters, err := FileNamesByPattern(dir, BlotterGlob)
		if err != nil {
			return SearchResult{Status: SearchFailed, Dir: dir, Message: err.Error()}
		}
		if len(stories)+len(blotters) > 0 {
			return SearchResult{
				Status:  SearchSuccess,
				Dir:     dir,
				Message: fmt.Sprintf("%d stories and %d blotters in %s", len(stories), len(blotters), dir),
			}
		}
		dir = PriorMonthDir(dir)
	}
	return result
}
