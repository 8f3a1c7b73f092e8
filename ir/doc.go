// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package ir provides an in-memory representation of SPIR-V modules for
// transformation passes.
//
// A Module keeps instructions grouped into the ordered sections the SPIR-V
// specification defines (capabilities through functions). Instructions are
// held by pointer, so ids and cross-references stay valid when a declaration
// is relocated within its section.
//
// Derived analyses (definition/use index, canonical type lookup, decoration
// index) live on a Context and are built lazily; passes that mutate the
// module must refresh the definition/use entries for every instruction they
// touch before reading the index again.
package ir
