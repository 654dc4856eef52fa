// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ledger - derive an identity's balance and accrued fee from
// its committed records
//
// nothing here is stored: the state is a pure fold over the deltas
// taken from the accept records of one chain, so every peer replaying
// the same chain reaches the same result or the same failure
package ledger
