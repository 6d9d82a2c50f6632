package migrations

func init() {
	Register(Migration{
		Timestamp:   "20250714-091500",
		Description: "Add per-page progress counters to jobs",
		Up: []string{
			`ALTER TABLE jobs ADD COLUMN current_page INTEGER NOT NULL DEFAULT 0`,
			`ALTER TABLE jobs ADD COLUMN total_pages INTEGER NOT NULL DEFAULT 0`,
		},
	})
}
