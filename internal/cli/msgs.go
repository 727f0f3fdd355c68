package cli

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort    = "Declarative machine provisioning"
	MsgListShort    = "Show the task tree without running it"
	MsgListLong     = "List loads the configuration and prints every task with its kind, source and destination. Nothing is executed."
	MsgVersionShort = "Print version information"
	MsgVersionLong  = "Print detailed version information including commit hash and build date"

	// Status messages
	MsgCommitFormat = "Commit: %s\n"
	MsgBuiltFormat  = "Built:  %s\n"

	// Error messages
	MsgErrInitPaths  = "failed to initialize paths: %w"
	MsgErrTasksFail  = "one or more tasks failed"

	// Flag descriptions
	MsgFlagVerbose   = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfigDir = "Configuration root (default $ZAPP_CONFIG_DIR or $XDG_CONFIG_HOME/zapp)"
	MsgFlagNoColor   = "Disable coloured status output"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/root-example.txt
	msgRootExampleRaw string
	MsgRootExample    = strings.TrimRight(msgRootExampleRaw, "\n")
)
