package constants

// Tool names.
const (
	ToolWriteToTerminal      = "write_to_terminal"
	ToolWriteToSpecificPane  = "write_to_specific_pane"
	ToolReadTerminalOutput   = "read_terminal_output"
	ToolSendControlCharacter = "send_control_character"
	ToolListPanes            = "list_panes"
	ToolSwitchPane           = "switch_pane"
)

// Tool argument names.
const (
	ArgCommand   = "command"
	ArgPaneID    = "pane_id"
	ArgLines     = "lines"
	ArgCharacter = "character"
)

// Transports.
const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// Read output bounds.
const (
	DefaultOutputLines = 50
	MaxOutputLines     = 10000
)
