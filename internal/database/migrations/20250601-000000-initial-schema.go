package migrations

func init() {
	Register(Migration{
		Timestamp:   "20250601-000000",
		Description: "Initial schema",
		Up: []string{
			// Jobs - clone and mockup redesign jobs
			`CREATE TABLE IF NOT EXISTS jobs (
				id TEXT PRIMARY KEY,
				type TEXT NOT NULL,
				status TEXT NOT NULL DEFAULT 'scraping',
				website_url TEXT NOT NULL,
				email TEXT,
				theme TEXT NOT NULL DEFAULT 'modern',
				business_type TEXT,
				demo_urls_json TEXT,
				mockup_url TEXT,
				generated_html TEXT,
				error_message TEXT,
				started_at TEXT,
				completed_at TEXT,
				created_at TEXT NOT NULL,
				updated_at TEXT NOT NULL
			)`,
			`CREATE INDEX IF NOT EXISTS idx_jobs_status ON jobs(status)`,
			`CREATE INDEX IF NOT EXISTS idx_jobs_created_at ON jobs(created_at)`,

			// Page designs - one generated page artifact per crawled page
			`CREATE TABLE IF NOT EXISTS page_designs (
				id TEXT PRIMARY KEY,
				job_id TEXT NOT NULL REFERENCES jobs(id) ON DELETE CASCADE,
				page_number INTEGER NOT NULL,
				title TEXT,
				source_url TEXT NOT NULL,
				generated_html TEXT NOT NULL,
				created_at TEXT NOT NULL
			)`,
			`CREATE INDEX IF NOT EXISTS idx_page_designs_job_id ON page_designs(job_id)`,
		},
	})
}
