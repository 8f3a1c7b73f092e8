package ir

import (
	"testing"

	"github.com/gogpu/spvopt/spv"
)

func TestDefUse_GetDef(t *testing.T) {
	m := buildSampleModule()
	defUse := NewDefUseManager(m)

	blockVar := defUse.GetDef(4)
	if blockVar == nil || blockVar.Op != spv.OpVariable {
		t.Fatalf("Expected OpVariable for id 4, got %v", blockVar)
	}
	if defUse.GetDef(99) != nil {
		t.Error("Expected nil for undefined id")
	}
}

func TestDefUse_Users(t *testing.T) {
	m := buildSampleModule()
	defUse := NewDefUseManager(m)

	// Users of the block variable: OpName, OpDecorate, OpAccessChain.
	users := defUse.Users(4)
	ops := map[spv.Op]bool{}
	for _, user := range users {
		ops[user.Op] = true
	}
	for _, want := range []spv.Op{spv.OpName, spv.OpDecorate, spv.OpAccessChain} {
		if !ops[want] {
			t.Errorf("Expected %v among users of the variable", want)
		}
	}
	if len(users) != 3 {
		t.Errorf("Expected 3 users, got %d", len(users))
	}
}

func TestDefUse_TypeReferencesAreUses(t *testing.T) {
	m := buildSampleModule()
	defUse := NewDefUseManager(m)

	// The variable references its pointer type (id 3) as result type.
	var foundVar bool
	defUse.ForEachUser(3, func(user *Instruction) {
		if user.Op == spv.OpVariable {
			foundVar = true
		}
	})
	if !foundVar {
		t.Error("Expected the variable among users of its pointer type")
	}
}

func TestDefUse_AnalyzeInstUse(t *testing.T) {
	m := buildSampleModule()
	defUse := NewDefUseManager(m)

	chain := defUse.GetDef(12)
	if chain == nil {
		t.Fatal("Missing access chain")
	}

	// Repoint the chain's result type from id 7 to a fresh pointer type.
	newPtr := NewInstruction(spv.OpTypePointer, m.AllocID(), uint32(spv.StorageClassPushConstant), 1)
	m.TypesValues = append(m.TypesValues, newPtr)
	defUse.AnalyzeInstDefUse(newPtr)

	chain.SetTypeID(newPtr.ResultID())
	defUse.AnalyzeInstUse(chain)

	// The old type lost the user, the new one gained it.
	for _, user := range defUse.Users(7) {
		if user == chain {
			t.Error("Stale use of the old type survived the refresh")
		}
	}
	foundChain := false
	for _, user := range defUse.Users(newPtr.ResultID()) {
		if user == chain {
			foundChain = true
		}
	}
	if !foundChain {
		t.Error("Refreshed use of the new type is missing")
	}
}

func TestDefUse_DuplicateOperandsVisitOnce(t *testing.T) {
	m := buildSampleModule()
	// %20 = OpPhi %7 %12 %11 %12 %11 — the same value twice.
	phi := NewInstruction(spv.OpPhi, 7, 20, 12, 11, 12, 11)
	m.Functions = append(m.Functions, phi)
	defUse := NewDefUseManager(m)

	visits := 0
	defUse.ForEachUser(12, func(user *Instruction) {
		if user == phi {
			visits++
		}
	})
	if visits != 1 {
		t.Errorf("Expected one visit for a duplicated operand, got %d", visits)
	}
}
