package cascata

import (
	"github.com/google/uuid"

	"github.com/shibukawa/cascata/arena"
)

// SourceFile is one entry of the compilation's include table. Position
// values refer into this table by index.
type SourceFile struct {
	Path   string
	Source string
}

// Context carries everything one compilation owns: the configuration,
// the arena that holds every node, the include table that positions
// index into, and the diagnostic sink. There are no global singletons;
// every operation that allocates or consults the include table takes
// the context explicitly.
type Context struct {
	ID     uuid.UUID
	Config *Config
	Arena  *arena.Arena
	Sink   DiagnosticSink

	includes []SourceFile
}

// NewContext creates a compilation context with a fresh arena.
func NewContext(config *Config) *Context {
	if config == nil {
		config = DefaultConfig()
	}
	return &Context{
		ID:     uuid.New(),
		Config: config,
		Arena:  arena.New(),
		Sink:   &BufferSink{},
	}
}

// AddInclude registers a source file and returns its index. Adding the
// same path twice returns the original index.
func (c *Context) AddInclude(path, source string) int {
	for i, f := range c.includes {
		if f.Path == path {
			return i
		}
	}
	c.includes = append(c.includes, SourceFile{Path: path, Source: source})
	return len(c.includes) - 1
}

// Include returns the include table entry for a file index.
func (c *Context) Include(index int) (SourceFile, bool) {
	if index < 0 || index >= len(c.includes) {
		return SourceFile{}, false
	}
	return c.includes[index], true
}

// Includes returns the include table in registration order.
func (c *Context) Includes() []SourceFile {
	return c.includes
}

// Report forwards a diagnostic to the context's sink.
func (c *Context) Report(level DiagnosticLevel, message string, state ParserState) {
	if c.Sink != nil {
		c.Sink.Report(Diagnostic{Level: level, Message: message, State: state})
	}
}

// Close releases the arena. Nodes allocated during the compilation must
// not be used afterwards.
func (c *Context) Close() {
	c.Arena.Release()
}
