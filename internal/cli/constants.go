package cli

const (
	// Number of arguments expected by the config set command.
	setCommandArgs = 2
	// A fetch or sync needs a handle and at least one file.
	minFileArgs = 2
	// meanPrecision is the number of decimals printed by analyze.
	meanPrecision = 6
)
