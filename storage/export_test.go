package storage

// setRaw writes an arbitrary value under the progress key.
func (ps *ProgressStore) setRaw(value string) error {
	_, err := ps.db.Exec(`INSERT OR REPLACE INTO kv (key, value) VALUES (?, ?)`, ProgressKey, value)
	return err
}
