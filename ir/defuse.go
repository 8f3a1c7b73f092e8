// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package ir

// DefUseManager maps each id to its defining instruction and to the
// instructions that reference it, either as an in-operand or as a result
// type.
//
// User lists preserve module order at build time and append refreshed
// instructions at the tail, so enumeration is deterministic within a pass
// invocation. The index must be refreshed via AnalyzeInstUse immediately
// after an instruction's operands or result type are mutated; reading a
// stale index is a correctness bug.
type DefUseManager struct {
	defs map[uint32]*Instruction
	uses map[uint32][]*Instruction
}

// NewDefUseManager builds the index for every instruction in the module.
func NewDefUseManager(m *Module) *DefUseManager {
	d := &DefUseManager{
		defs: make(map[uint32]*Instruction),
		uses: make(map[uint32][]*Instruction),
	}
	m.ForEachInst(d.AnalyzeInstDefUse)
	return d
}

// AnalyzeInstDefUse records the instruction's definition and uses.
func (d *DefUseManager) AnalyzeInstDefUse(inst *Instruction) {
	if id := inst.ResultID(); id != 0 {
		d.defs[id] = inst
	}
	d.addUses(inst)
}

// AnalyzeInstUse re-records the instruction's uses after a mutation.
func (d *DefUseManager) AnalyzeInstUse(inst *Instruction) {
	d.removeUses(inst)
	d.addUses(inst)
}

// GetDef returns the defining instruction for id, or nil.
func (d *DefUseManager) GetDef(id uint32) *Instruction {
	return d.defs[id]
}

// ForEachUser calls fn for every instruction referencing the id, in a
// deterministic order. A user appearing through several operands is visited
// once.
func (d *DefUseManager) ForEachUser(id uint32, fn func(user *Instruction)) {
	seen := make(map[*Instruction]bool, len(d.uses[id]))
	for _, user := range d.uses[id] {
		if seen[user] {
			continue
		}
		seen[user] = true
		fn(user)
	}
}

// Users returns a snapshot of the instructions referencing id. The snapshot
// stays valid while the walk mutates the index.
func (d *DefUseManager) Users(id uint32) []*Instruction {
	var users []*Instruction
	d.ForEachUser(id, func(user *Instruction) {
		users = append(users, user)
	})
	return users
}

func (d *DefUseManager) addUses(inst *Instruction) {
	if typeID := inst.TypeID(); typeID != 0 {
		d.uses[typeID] = append(d.uses[typeID], inst)
	}
	inst.forEachIDOperand(func(n int) {
		id := inst.InOperand(n)
		if id != 0 {
			d.uses[id] = append(d.uses[id], inst)
		}
	})
}

func (d *DefUseManager) removeUses(inst *Instruction) {
	for id, users := range d.uses {
		filtered := users[:0]
		for _, user := range users {
			if user != inst {
				filtered = append(filtered, user)
			}
		}
		if len(filtered) == 0 {
			delete(d.uses, id)
			continue
		}
		d.uses[id] = filtered
	}
}
