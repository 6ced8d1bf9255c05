package modes

// Mode selects between the command line tool and test scopes.
type Mode string

const (
	ModeProduction  Mode = "production"
	ModeDevelopment Mode = "development"
)
