package utils

// File and directory names shared across the project.
const (
	// GitIgnoreFileName is the name of the Git ignore file read from the scan root.
	GitIgnoreFileName = ".gitignore"
	// IgnoreFileName is the name of the tool-neutral ignore file read after .gitignore.
	IgnoreFileName = ".ignore"
	// GitDirectoryName is the name of the Git repository directory.
	GitDirectoryName = ".git"
	// ConfigFileName is the name of the global configuration file.
	ConfigFileName = "config.yaml"
	// LocalConfigFileName is the name of the per-project configuration file.
	LocalConfigFileName = ".repodoc.yaml"
	// GlobalConfigDirectoryName is the directory under the user's home holding ConfigFileName.
	GlobalConfigDirectoryName = ".repodoc"
	// DefaultOutputFileName is where the generate command writes its document.
	DefaultOutputFileName = "file_documentation.md"
	// RootDirectoryPath is the relative path used for the scan root itself.
	RootDirectoryPath = "."
)

// EmptyString represents a reusable empty string constant.
const EmptyString = ""

// Messages used by the command entry point.
const (
	// LoggerInitializationFailedMessageFormat reports a logger construction failure.
	LoggerInitializationFailedMessageFormat = "logger initialization failed: %w"
	// ApplicationExecutionFailedMessage prefixes a fatal command error.
	ApplicationExecutionFailedMessage = "repodoc failed"
)
