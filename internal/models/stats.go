package models

// FileStats counts the outcome of loading one file.
type FileStats struct {
	StationsInserted   int
	StationsUpdated    int
	ConnectorsInserted int
	ConnectorsSkipped  int
	RecordsFailed      int
}

// RunStats aggregates file stats over a whole batch. The totals reported to
// the batch row are the arithmetic sum of every successful LoadFile result.
type RunStats struct {
	FilesProcessed     int
	StationsInserted   int
	StationsUpdated    int
	ConnectorsInserted int
}

// AddFile folds one file's counts into the run totals and bumps the file
// counter.
func (r *RunStats) AddFile(fs FileStats) {
	r.FilesProcessed++
	r.StationsInserted += fs.StationsInserted
	r.StationsUpdated += fs.StationsUpdated
	r.ConnectorsInserted += fs.ConnectorsInserted
}
