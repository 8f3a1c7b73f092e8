// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package ir

// Analysis is a bitmask of derived analyses a Context can hold.
type Analysis uint32

const (
	AnalysisNone        Analysis = 0
	AnalysisDefUse      Analysis = 1 << 0
	AnalysisTypes       Analysis = 1 << 1
	AnalysisDecorations Analysis = 1 << 2

	// AnalysisAll marks every analysis as preserved.
	AnalysisAll = AnalysisDefUse | AnalysisTypes | AnalysisDecorations
)

// Context owns a module together with lazily built analyses. It is the unit
// of work a transformation pass operates on; one context must not be shared
// across goroutines.
type Context struct {
	module *Module

	valid  Analysis
	defUse *DefUseManager
	types  *TypeManager
	decos  *DecorationManager
}

// NewContext wraps a module with no analyses built yet.
func NewContext(m *Module) *Context {
	return &Context{module: m}
}

// Module returns the underlying module.
func (c *Context) Module() *Module {
	return c.module
}

// DefUse returns the definition/use index, building it on first access.
func (c *Context) DefUse() *DefUseManager {
	if c.valid&AnalysisDefUse == 0 {
		c.defUse = NewDefUseManager(c.module)
		c.valid |= AnalysisDefUse
	}
	return c.defUse
}

// Types returns the canonical type manager, building it on first access.
func (c *Context) Types() *TypeManager {
	if c.valid&AnalysisTypes == 0 {
		c.types = NewTypeManager(c.module, c.DefUse())
		c.valid |= AnalysisTypes
	}
	return c.types
}

// Decorations returns the decoration manager, building it on first access.
func (c *Context) Decorations() *DecorationManager {
	if c.valid&AnalysisDecorations == 0 {
		c.decos = NewDecorationManager(c.module, c.DefUse())
		c.valid |= AnalysisDecorations
	}
	return c.decos
}

// UpdateDefUse refreshes the definition/use entries for a just-mutated
// instruction. Callers must invoke this before any further logic reads the
// index.
func (c *Context) UpdateDefUse(inst *Instruction) {
	c.DefUse().AnalyzeInstUse(inst)
}

// InvalidateAnalysesExceptFor drops every analysis not named in preserved.
// The next accessor call rebuilds from the module.
func (c *Context) InvalidateAnalysesExceptFor(preserved Analysis) {
	c.valid &= preserved
	if c.valid&AnalysisDefUse == 0 {
		c.defUse = nil
		// The type and decoration managers index through def-use; they
		// cannot outlive it.
		c.valid &^= AnalysisTypes | AnalysisDecorations
	}
	if c.valid&AnalysisTypes == 0 {
		c.types = nil
	}
	if c.valid&AnalysisDecorations == 0 {
		c.decos = nil
	}
}
