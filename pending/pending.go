// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package pending - open proposals discovered through notification links
package pending

import (
	"sort"

	"github.com/mutualcredit/transactord/notify"
	"github.com/mutualcredit/transactord/transactionrecord"
)

// Unresolved - a terminal record whose init is not visible
type Unresolved struct {
	Link    transactionrecord.Link    `json:"link"`
	Kind    transactionrecord.TagType `json:"kind"`
	InitRef transactionrecord.Link    `json:"initRef"`
}

// Pending - open inits per protocol, keyed by init link
type Pending struct {
	Alpha   map[transactionrecord.Link]*transactionrecord.AlphaRecipientInit `json:"alpha"`
	Beta    map[transactionrecord.Link]*transactionrecord.BetaSpenderInit    `json:"beta"`
	Unknown []Unresolved                                                     `json:"unknown"`
}

// Linker - the link index query used to find notifications
type Linker interface {
	GetLinks(base notify.Base, tag string) ([]notify.Item, error)
}

// List - open proposals notified to the identity
func List(linker Linker, identity notify.Base) (*Pending, error) {
	items, err := linker.GetLinks(identity, notify.Tag)
	if nil != err {
		return nil, err
	}
	return Build(items), nil
}

// Build - open proposals from loaded link items
//
// the result does not depend on the order of the items: terminals are
// collected first and an init is open only when no terminal of its
// protocol refers to it
func Build(items []notify.Item) *Pending {
	p := &Pending{
		Alpha:   make(map[transactionrecord.Link]*transactionrecord.AlphaRecipientInit),
		Beta:    make(map[transactionrecord.Link]*transactionrecord.BetaSpenderInit),
		Unknown: make([]Unresolved, 0),
	}

	closed := map[transactionrecord.Protocol]map[transactionrecord.Link]struct{}{
		transactionrecord.Alpha: {},
		transactionrecord.Beta:  {},
	}
	inits := map[transactionrecord.Protocol]map[transactionrecord.Link]struct{}{
		transactionrecord.Alpha: {},
		transactionrecord.Beta:  {},
	}
	terminals := make([]Unresolved, 0)

	for _, item := range items {
		switch tx := item.Record.(type) {
		case *transactionrecord.AlphaRecipientInit:
			inits[transactionrecord.Alpha][item.Hash] = struct{}{}
		case *transactionrecord.BetaSpenderInit:
			inits[transactionrecord.Beta][item.Hash] = struct{}{}
		case transactionrecord.Follower:
			tag := tx.Tag()
			closed[tag.Protocol()][tx.GetInitRef()] = struct{}{}
			terminals = append(terminals, Unresolved{
				Link:    item.Hash,
				Kind:    tag,
				InitRef: tx.GetInitRef(),
			})
		}
	}

	for _, item := range items {
		switch tx := item.Record.(type) {
		case *transactionrecord.AlphaRecipientInit:
			if _, ok := closed[transactionrecord.Alpha][item.Hash]; !ok {
				p.Alpha[item.Hash] = tx
			}
		case *transactionrecord.BetaSpenderInit:
			if _, ok := closed[transactionrecord.Beta][item.Hash]; !ok {
				p.Beta[item.Hash] = tx
			}
		}
	}

	for _, terminal := range terminals {
		if _, ok := inits[terminal.Kind.Protocol()][terminal.InitRef]; !ok {
			p.Unknown = append(p.Unknown, terminal)
		}
	}
	sort.Slice(p.Unknown, func(i, j int) bool {
		return p.Unknown[i].Link.String() < p.Unknown[j].Link.String()
	})

	return p
}
