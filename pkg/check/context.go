package check

import (
	"github.com/Sumatoshi-tech/stylewalk/pkg/node"
	"github.com/Sumatoshi-tech/stylewalk/pkg/source"
)

// Sink receives emitted violations.
type Sink func(Violation)

// Context is handed to every callback of one check for one file. It carries
// the file being checked, the node currently being visited and the
// violation sink.
type Context struct {
	file     string
	contents *source.Contents
	ruleID   string
	severity Severity
	messages map[string]string
	sink     Sink
	current  *node.Node
}

// ContextConfig holds the values a dispatcher binds into a [Context].
type ContextConfig struct {
	File     string
	Contents *source.Contents
	RuleID   string
	Severity Severity
	Messages map[string]string
	Sink     Sink
}

// NewContext creates a context for one check and one file.
func NewContext(cfg ContextConfig) *Context {
	return &Context{
		file:     cfg.File,
		contents: cfg.Contents,
		ruleID:   cfg.RuleID,
		severity: cfg.Severity,
		messages: cfg.Messages,
		sink:     cfg.Sink,
	}
}

// File returns the name of the file being checked.
func (c *Context) File() string {
	return c.file
}

// Contents returns the line table and the comment/literal index.
func (c *Context) Contents() *source.Contents {
	return c.contents
}

// RuleID returns the id violations are attributed to.
func (c *Context) RuleID() string {
	return c.ruleID
}

// Current returns the node being visited, or the root during BeginTree and
// FinishTree.
func (c *Context) Current() *node.Node {
	return c.current
}

// Focus sets the node violations are attributed to by default. The
// dispatcher calls it before every callback.
func (c *Context) Focus(n *node.Node) {
	c.current = n
}

// Report emits a violation at the start of the current node.
func (c *Context) Report(key string, args ...any) {
	line, col := c.currentPosition()
	c.emit(line, col, c.severity, key, args)
}

// ReportSeverity is like Report with an explicit severity.
func (c *Context) ReportSeverity(severity Severity, key string, args ...any) {
	line, col := c.currentPosition()
	c.emit(line, col, severity, key, args)
}

// ReportAt emits a violation at an explicit location.
func (c *Context) ReportAt(line, col int, key string, args ...any) {
	c.emit(line, col, c.severity, key, args)
}

// ReportNode emits a violation at the start of n.
func (c *Context) ReportNode(n *node.Node, key string, args ...any) {
	c.emit(n.Pos.StartLine, n.Pos.StartCol, c.severity, key, args)
}

func (c *Context) currentPosition() (line, col int) {
	if c.current == nil {
		return 0, 0
	}

	return c.current.Pos.StartLine, c.current.Pos.StartCol
}

func (c *Context) emit(line, col int, severity Severity, key string, args []any) {
	if c.sink == nil {
		return
	}

	var kind node.Kind
	if c.current != nil {
		kind = c.current.Kind
	}

	c.sink(Violation{
		File:     c.file,
		Line:     line,
		Col:      col,
		RuleID:   c.ruleID,
		Key:      key,
		Args:     args,
		Message:  Render(c.messages, key, args),
		Severity: severity,
		Kind:     kind,
	})
}
