package utils

// GitDirectoryName is the name of the Git repository metadata directory.
const GitDirectoryName = ".git"

// GitIgnoreFileName is the name of the Git ignore-rule file.
const GitIgnoreFileName = ".gitignore"

// LoggerInitializationFailedMessageFormat reports a logger construction failure.
const LoggerInitializationFailedMessageFormat = "failed to initialize logger: %w"

// ApplicationExecutionFailedMessage reports a fatal application error.
const ApplicationExecutionFailedMessage = "application execution failed"
