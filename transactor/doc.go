// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package transactor - one ledger participant
//
// A node owns an identity, its chain store and its notification index.
// It offers the two transfer protocols:
//
//	Protocol A (recipient initiated)
//	  AlphaInit    by the recipient
//	  AlphaAccept  by the spender, countersigned by the recipient
//	  AlphaReject  by the spender
//
//	Protocol B (spender initiated)
//	  BetaInit     by the spender
//	  BetaAccept   by the recipient, countersigned by the spender
//	  BetaReject   by the recipient
//	  BetaWithdraw by the spender
//
// An accept is committed first by the init author, on receipt of a
// countersign request, and then by the accepting party; so both
// parties' chains hold every completed transfer.  Every other record
// is committed by its author and delivered to the counterparty with
// the author's prior chain so that it can be validated there.
//
// Delivery failures do not undo a commit; the delivery is queued and
// retried by Run.
package transactor
