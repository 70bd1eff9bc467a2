package utils

// LoggerInitializationFailedMessageFormat reports a logger that could not be built.
const LoggerInitializationFailedMessageFormat = "initialize logger: %w"

// ApplicationExecutionFailedMessage prefixes the fatal error logged by the entry point.
const ApplicationExecutionFailedMessage = "dirscan failed"
