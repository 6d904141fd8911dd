package cmd

const (
	RootCmdName  = "carsearch"
	RootCmdShort = "Car-search web service"
	RootCmdLong  = "carsearch serves a car-search API backed by an external catalog with a synthetic fallback."

	ServeCmdName  = "serve"
	ServeCmdShort = "Start the HTTP server"
	ServeCmdLong  = "Start the car-search HTTP server and block until interrupted."

	MigrateCmdName  = "migrate"
	MigrateCmdShort = "Apply database migrations"
	MigrateCmdLong  = "Apply the SQL migrations in db/migrations to the configured database."
)
