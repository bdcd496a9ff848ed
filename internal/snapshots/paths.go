package snapshots

import "path/filepath"

// SnapshotPath builds the file path for the snapshot stored under key.
func SnapshotPath(basePath, key string) string {
	return filepath.Join(basePath, key+".json")
}
