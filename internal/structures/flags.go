package structures

const (
	CommandServe = "serve"
	CommandScan  = "scan"
)

// CliFlags holds everything parsed from the command line.
type CliFlags struct {
	ConfigPath string
	DebugMode  bool
	Command    string

	// scan command only
	Track  string
	Day    int
	DryRun bool
}
