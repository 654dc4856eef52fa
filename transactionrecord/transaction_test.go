// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transactionrecord_test

import (
	"bytes"
	"encoding/json"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mutualcredit/transactord/account"
	"github.com/mutualcredit/transactord/amount"
	"github.com/mutualcredit/transactord/fault"
	"github.com/mutualcredit/transactord/transactionrecord"
)

func makeKey(t *testing.T, b byte) *account.PrivateKey {
	key, err := account.PrivateKeyFromSeed(bytes.Repeat([]byte{b}, 32), true)
	if nil != err {
		t.Fatalf("key error: %s", err)
	}
	return key
}

func mustAmount(t *testing.T, s string) amount.Amount {
	a, err := amount.Parse(s)
	if nil != err {
		t.Fatalf("amount error: %s", err)
	}
	return a
}

func TestAlphaInitRoundTrip(t *testing.T) {
	spender := makeKey(t, 1)
	recipient := makeKey(t, 2)

	init := &transactionrecord.AlphaRecipientInit{
		Spender:   spender.Account(),
		Recipient: recipient.Account(),
		Amount:    mustAmount(t, "64"),
		Notes:     "lunch",
		Nonce:     99,
	}

	packed, err := transactionrecord.Sign(init, recipient)
	if nil != err {
		t.Fatalf("sign error: %s", err)
	}

	tx, n, err := packed.Unpack()
	if nil != err {
		t.Fatalf("unpack error: %s", err)
	}
	assert.Equal(t, len(packed), n, "consumed")

	unpacked, ok := tx.(*transactionrecord.AlphaRecipientInit)
	if !ok {
		t.Fatalf("wrong type: %T", tx)
	}
	assert.True(t, reflect.DeepEqual(init, unpacked), "round trip")
	assert.Equal(t, transactionrecord.AlphaRecipientInitTag, tx.Tag(), "tag")
	assert.True(t, recipient.Account().Equal(unpacked.Author()), "author")

	// spender cannot sign a recipient's proposal
	_, err = init.Pack(spender.Account())
	assert.Equal(t, fault.InvalidSignature, err, "wrong signer")

	// link is stable
	assert.Equal(t, packed.MakeLink(), transactionrecord.Packed(append([]byte{}, packed...)).MakeLink(), "link")
}

func TestBetaAcceptCountersigned(t *testing.T) {
	spender := makeKey(t, 3)
	recipient := makeKey(t, 4)

	initRef := transactionrecord.Packed("some init").MakeLink()
	accept := &transactionrecord.BetaRecipientAccept{
		InitRef:   initRef,
		Spender:   spender.Account(),
		Recipient: recipient.Account(),
		Amount:    mustAmount(t, "64"),
		Notes:     "",
	}

	signed, err := transactionrecord.Sign(accept, recipient)
	if nil != err {
		t.Fatalf("sign error: %s", err)
	}

	tx, _, err := signed.Unpack()
	if nil != err {
		t.Fatalf("unpack signed error: %s", err)
	}
	assert.Equal(t, 0, len(tx.(*transactionrecord.BetaRecipientAccept).Countersignature), "no countersignature yet")

	// only the spender may countersign
	_, err = transactionrecord.Countersign(accept, recipient)
	assert.Equal(t, fault.InvalidSignature, err, "author countersigning")

	countersigned, err := transactionrecord.Countersign(accept, spender)
	if nil != err {
		t.Fatalf("countersign error: %s", err)
	}
	assert.True(t, bytes.HasPrefix(countersigned, signed), "countersignature is appended")
	assert.NotEqual(t, signed.MakeLink(), countersigned.MakeLink(), "different link")

	tx, n, err := countersigned.Unpack()
	if nil != err {
		t.Fatalf("unpack countersigned error: %s", err)
	}
	assert.Equal(t, len(countersigned), n, "consumed")
	unpacked := tx.(*transactionrecord.BetaRecipientAccept)
	assert.Equal(t, initRef, unpacked.GetInitRef(), "init ref")
	assert.Equal(t, accept.Countersignature, unpacked.Countersignature, "countersignature")
	assert.True(t, tx.Tag().IsLedger(), "ledger kind")
}

func TestAcceptInterfaces(t *testing.T) {
	initRef := transactionrecord.Packed("some init").MakeLink()
	spender := makeKey(t, 3).Account()
	recipient := makeKey(t, 4).Account()

	accepts := []transactionrecord.Countersigned{
		&transactionrecord.AlphaSpenderAccept{InitRef: initRef, Spender: spender, Recipient: recipient},
		&transactionrecord.BetaRecipientAccept{InitRef: initRef, Spender: spender, Recipient: recipient},
	}
	counter := []*account.Account{recipient, spender}

	for i, accept := range accepts {
		var follower transactionrecord.Follower = accept
		assert.Equal(t, initRef, follower.GetInitRef(), "init ref")
		assert.Equal(t, accept.Tag(), follower.Tag(), "tag")
		assert.True(t, counter[i].Equal(accept.Countersigner()), "countersigner")
		assert.True(t, accept.Tag().IsTerminal(), "terminal")

		var transfer transactionrecord.Transfer = accept
		assert.True(t, transfer.Author().Equal(counter[1-i]), "author")
	}
}

func TestClosures(t *testing.T) {
	owner := makeKey(t, 5)
	other := makeKey(t, 6)
	initRef := transactionrecord.Packed("init").MakeLink()

	items := []transactionrecord.Transaction{
		&transactionrecord.AlphaSpenderReject{InitRef: initRef},
		&transactionrecord.BetaRecipientReject{InitRef: initRef},
		&transactionrecord.BetaSpenderWithdraw{InitRef: initRef},
	}
	for i, item := range items {
		packed, err := transactionrecord.Sign(item, owner)
		if nil != err {
			t.Fatalf("%d: sign error: %s", i, err)
		}
		tx, _, err := packed.Unpack()
		if nil != err {
			t.Fatalf("%d: unpack error: %s", i, err)
		}
		assert.Equal(t, item.Tag(), tx.Tag(), "%d: tag", i)
		assert.Equal(t, initRef, tx.(transactionrecord.Follower).GetInitRef(), "%d: init ref", i)
		assert.True(t, tx.Tag().IsTerminal(), "%d: terminal", i)

		_, err = tx.Pack(owner.Account())
		assert.Nil(t, err, "%d: owner signature", i)
		_, err = tx.Pack(other.Account())
		assert.Equal(t, fault.InvalidSignature, err, "%d: other signature", i)
	}
}

func TestPackErrors(t *testing.T) {
	spender := makeKey(t, 7)
	recipient := makeKey(t, 8)

	init := &transactionrecord.BetaSpenderInit{
		Spender:   spender.Account(),
		Recipient: spender.Account(),
		Amount:    mustAmount(t, "1"),
	}
	_, err := transactionrecord.Sign(init, spender)
	assert.Equal(t, fault.SameParties, err, "same parties")

	init.Recipient = recipient.Account()
	init.Amount = mustAmount(t, "-1")
	_, err = transactionrecord.Sign(init, spender)
	assert.Equal(t, fault.NegativeTransferAmount, err, "negative")

	init.Amount = mustAmount(t, "1")
	init.Notes = string(bytes.Repeat([]byte{'x'}, 2049))
	_, err = transactionrecord.Sign(init, spender)
	assert.Equal(t, fault.NotesTooLong, err, "notes")

	_, err = (&transactionrecord.AlphaSpenderReject{}).Pack(spender.Account())
	assert.Equal(t, fault.MissingParameters, err, "missing init ref")
}

func TestUnpackErrors(t *testing.T) {
	spender := makeKey(t, 9)
	recipient := makeKey(t, 10)

	init := &transactionrecord.BetaSpenderInit{
		Spender:   spender.Account(),
		Recipient: recipient.Account(),
		Amount:    mustAmount(t, "ff"),
	}
	packed, err := transactionrecord.Sign(init, spender)
	if nil != err {
		t.Fatalf("sign error: %s", err)
	}

	_, _, err = transactionrecord.Packed{}.Unpack()
	assert.Equal(t, fault.NotTransactionPack, err, "empty")

	_, _, err = transactionrecord.Packed{0x7f}.Unpack()
	assert.Equal(t, fault.UnknownRecordKind, err, "unknown tag")

	_, _, err = packed[:len(packed)-3].Unpack()
	assert.NotNil(t, err, "truncated")

	tampered := append(transactionrecord.Packed{}, packed...)
	tampered[len(tampered)-70] ^= 0x01
	_, _, err = tampered.Unpack()
	assert.NotNil(t, err, "tampered")
}

func TestTags(t *testing.T) {
	for tag := transactionrecord.NullTag + 1; tag < transactionrecord.InvalidTag; tag += 1 {
		name := tag.String()
		back, err := transactionrecord.TagFromName(name)
		assert.Nil(t, err, "%s: from name", name)
		assert.Equal(t, tag, back, "%s: round trip", name)
		assert.True(t, tag.IsInit() != tag.IsTerminal(), "%s: init xor terminal", name)
		assert.Equal(t, tag.Protocol(), tag.InitTag().Protocol(), "%s: protocol", name)
	}

	assert.Equal(t, transactionrecord.Beta, transactionrecord.BetaSpenderWithdrawTag.Protocol(), "protocol")
	assert.Equal(t, transactionrecord.Withdraw, transactionrecord.BetaSpenderWithdrawTag.Phase(), "phase")
	assert.False(t, transactionrecord.InvalidTag.IsLedger(), "invalid")

	buffer, err := json.Marshal(transactionrecord.AlphaSpenderAcceptTag)
	assert.Nil(t, err, "marshal")
	assert.Equal(t, `"alphaSpenderAccept"`, string(buffer), "json")

	_, err = transactionrecord.TagFromName("transfer")
	assert.Equal(t, fault.UnknownRecordKind, err, "unknown")
}

func TestLinkText(t *testing.T) {
	link := transactionrecord.Packed("record").MakeLink()

	parsed, err := transactionrecord.LinkFromHexString(link.String())
	assert.Nil(t, err, "parse")
	assert.Equal(t, link, parsed, "round trip")

	_, err = transactionrecord.LinkFromHexString("abcd")
	assert.Equal(t, fault.InvalidLink, err, "short")

	_, err = transactionrecord.LinkFromBytes([]byte{1, 2})
	assert.Equal(t, fault.InvalidLink, err, "short bytes")
	assert.True(t, transactionrecord.Link{}.IsZero(), "zero")
}
