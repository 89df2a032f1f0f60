package config

// NewGeminiForTest creates a Gemini config for testing purposes
func NewGeminiForTest(projectID, location string) *Gemini {
	return &Gemini{
		projectID: projectID,
		location:  location,
	}
}

// NewRepositoryForTest creates a Repository config for testing purposes
func NewRepositoryForTest(backend, dbPath string) *Repository {
	return &Repository{
		backend: backend,
		dbPath:  dbPath,
	}
}

// NewInputsForTest creates an Inputs config for testing purposes
func NewInputsForTest(issuesPath, defectsPath, raidPath string) *Inputs {
	return &Inputs{
		issuesPath:  issuesPath,
		defectsPath: defectsPath,
		raidPath:    raidPath,
	}
}
