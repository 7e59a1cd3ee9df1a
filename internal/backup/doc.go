// Package backup creates timestamped snapshots of the provider store file.
//
// Snapshots are plain copies named backup_<YYYYMMDD_HHMMSS>.json inside a
// backups/ directory next to the store. After every snapshot the directory
// is pruned to the most recent retained entries by modification time; files
// that do not match the snapshot naming scheme are never touched.
package backup
