// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/mutualcredit/transactord/account"
	"github.com/mutualcredit/transactord/command/transactor-cli/rpccalls"
	"github.com/mutualcredit/transactord/transactionrecord"
)

func connect(c *cli.Context) (*metadata, *rpccalls.Client, error) {
	m := c.App.Metadata["config"].(*metadata)
	client, err := rpccalls.NewClient(m.connect, m.verbose, m.e)
	if nil != err {
		return nil, nil, err
	}
	return m, client, nil
}

func runInfo(c *cli.Context) error {
	m, client, err := connect(c)
	if nil != err {
		return err
	}
	defer client.Close()

	reply, err := client.GetInfo()
	if nil != err {
		return err
	}
	return printJson(m.w, reply)
}

func runBalance(c *cli.Context) error {
	m, client, err := connect(c)
	if nil != err {
		return err
	}
	defer client.Close()

	reply, err := client.GetBalance()
	if nil != err {
		return err
	}
	return printJson(m.w, reply)
}

func runPending(c *cli.Context) error {
	m, client, err := connect(c)
	if nil != err {
		return err
	}
	defer client.Close()

	reply, err := client.GetPending()
	if nil != err {
		return err
	}
	return printJson(m.w, reply)
}

func runTransactions(c *cli.Context) error {
	m, client, err := connect(c)
	if nil != err {
		return err
	}
	defer client.Close()

	reply, err := client.GetTransactions(c.Uint64("start"), c.Int("count"))
	if nil != err {
		return err
	}
	return printJson(m.w, reply)
}

func runGet(c *cli.Context) error {
	link, err := checkLink(c.String("link"))
	if nil != err {
		return err
	}

	m, client, err := connect(c)
	if nil != err {
		return err
	}
	defer client.Close()

	reply, err := client.GetRecord(link)
	if nil != err {
		return err
	}
	return printJson(m.w, reply)
}

func runInit(protocol rpccalls.Protocol) cli.ActionFunc {
	return func(c *cli.Context) error {
		counterparty, err := checkAccount(c.String("counterparty"))
		if nil != err {
			return err
		}
		value, err := checkAmount(c.String("amount"))
		if nil != err {
			return err
		}

		m, client, err := connect(c)
		if nil != err {
			return err
		}
		defer client.Close()

		reply, err := client.Init(protocol, counterparty, value, c.String("notes"))
		if nil != err {
			return err
		}
		return printJson(m.w, reply)
	}
}

func runResolve(protocol rpccalls.Protocol, action string) cli.ActionFunc {
	return func(c *cli.Context) error {
		initRef, err := checkLink(c.String("init"))
		if nil != err {
			return err
		}

		m, client, err := connect(c)
		if nil != err {
			return err
		}
		defer client.Close()

		reply, err := client.Resolve(protocol, action, initRef)
		if nil != err {
			return err
		}
		return printJson(m.w, reply)
	}
}

func checkAccount(s string) (*account.Account, error) {
	if "" == s {
		return nil, errMissing("counterparty")
	}
	return account.AccountFromBase58(s)
}

func checkLink(s string) (transactionrecord.Link, error) {
	if "" == s {
		return transactionrecord.Link{}, errMissing("link")
	}
	return transactionrecord.LinkFromHexString(s)
}
