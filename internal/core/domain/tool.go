package domain

// ToolArgs holds the positional string arguments of a tool call.
// Tools take at most two arguments; unused slots are ignored.
type ToolArgs struct {
	First  string
	Second string
}
