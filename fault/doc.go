// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fault - error instances
//
// Provides a single instance of errors to allow easy comparison
// without having to resort to partial string matches
//
// Each error belongs to a class (a distinct string type) and callers
// decide how to react by testing the class with the IsErrX
// predicates, e.g.:
//
//	if fault.IsErrValidation(err) {
//	        // refuse admission
//	}
package fault
