// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/getoptions"
	"github.com/bitmark-inc/logger"

	"github.com/mutualcredit/transactord/background"
	"github.com/mutualcredit/transactord/configuration"
	"github.com/mutualcredit/transactord/messaging"
	"github.com/mutualcredit/transactord/rpc"
	"github.com/mutualcredit/transactord/storage"
	"github.com/mutualcredit/transactord/transactor"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

// main program
func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	flags := []getoptions.Option{
		{Long: "help", HasArg: getoptions.NO_ARGUMENT, Short: 'h'},
		{Long: "verbose", HasArg: getoptions.NO_ARGUMENT, Short: 'v'},
		{Long: "quiet", HasArg: getoptions.NO_ARGUMENT, Short: 'q'},
		{Long: "version", HasArg: getoptions.NO_ARGUMENT, Short: 'V'},
		{Long: "testing", HasArg: getoptions.NO_ARGUMENT, Short: 't'},
		{Long: "passphrase", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'p'},
		{Long: "config-file", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'c'},
	}

	program, options, arguments, err := getoptions.GetOS(flags)
	if nil != err {
		exitwithstatus.Message("%s: getoptions error: %s", program, err)
	}

	if len(options["version"]) > 0 {
		processSetupCommand(program, []string{"version"}, "", false)
		return
	}

	if len(options["help"]) > 0 {
		processSetupCommand(program, []string{"help"}, "", false)
		return
	}

	passphrase := ""
	if len(options["passphrase"]) > 0 {
		passphrase = options["passphrase"][0]
	}

	// these commands do not require the configuration and
	// process data needed for initial setup
	if len(arguments) > 0 && processSetupCommand(program, arguments, passphrase, len(options["testing"]) > 0) {
		return
	}

	if 1 != len(options["config-file"]) {
		exitwithstatus.Message("%s: only one config-file option is required, %d were detected", program, len(options["config-file"]))
	}

	// read options and parse the configuration file
	configurationFile := options["config-file"][0]
	variables := map[string]string{
		"passphrase": passphrase,
	}
	theConfiguration, err := getConfiguration(configurationFile, variables)
	if nil != err {
		exitwithstatus.Message("%s: failed to read configuration from: %q  error: %s", program, configurationFile, err)
	}

	// these commands require the configuration and
	// perform enquiries on the configuration
	if len(arguments) > 0 && processConfigCommand(arguments, theConfiguration) {
		return
	}

	// start logging
	if err = logger.Initialise(theConfiguration.Logging); nil != err {
		exitwithstatus.Message("%s: logger setup failed with error: %s", program, err)
	}
	defer logger.Finalise()

	// create a logger channel for the main program
	log := logger.New("main")
	defer log.Info("finished")
	log.Info("starting…")
	log.Infof("version: %s", version)
	log.Debugf("theConfiguration: %v", theConfiguration)

	// ------------------
	// start of real main
	// ------------------

	// optional PID file
	// use if not running under a supervisor program like daemon(8)
	if "" != theConfiguration.PidFile {
		lockFile, err := os.OpenFile(theConfiguration.PidFile, os.O_WRONLY|os.O_EXCL|os.O_CREATE, os.ModeExclusive|0600)
		if err != nil {
			if os.IsExist(err) {
				exitwithstatus.Message("%s: another instance is already running", program)
			}
			exitwithstatus.Message("%s: PID file: %q creation failed, error: %s", program, theConfiguration.PidFile, err)
		}
		fmt.Fprintf(lockFile, "%d\n", os.Getpid())
		lockFile.Close()
		defer os.Remove(theConfiguration.PidFile)
	}

	identityPassphrase := theConfiguration.Identity.Passphrase
	if "" == identityPassphrase {
		identityPassphrase = passphrase
	}
	key, err := readIdentity(theConfiguration.Identity.File, identityPassphrase)
	if nil != err {
		log.Criticalf("identity: %q error: %s", theConfiguration.Identity.File, err)
		exitwithstatus.Message("identity: %q error: %s", theConfiguration.Identity.File, err)
	}
	if key.Test != theConfiguration.Testing {
		log.Criticalf("identity: %q testing: %v does not match configuration", theConfiguration.Identity.File, key.Test)
		exitwithstatus.Message("identity: %q testing: %v does not match configuration", theConfiguration.Identity.File, key.Test)
	}
	log.Infof("identity: %s", key.Account())

	// general info
	log.Infof("test mode: %v", theConfiguration.Testing)
	log.Infof("database: %q", theConfiguration.Database)

	// connection info
	log.Debugf("%s = %#v", "ClientRPC", theConfiguration.ClientRPC)
	log.Debugf("%s = %#v", "Peering", theConfiguration.Peering)

	// start the data storage
	log.Info("initialise storage")
	database, err := storage.Open(theConfiguration.Database.Name, storage.ReadWrite)
	if nil != err {
		log.Criticalf("storage initialise error: %s", err)
		exitwithstatus.Message("storage initialise error: %s", err)
	}
	defer database.Close()

	// ledger limits follow the configuration file
	properties, err := configuration.NewProperties(configurationFile, variables, logger.New("properties"))
	if nil != err {
		log.Criticalf("ledger properties error: %s", err)
		exitwithstatus.Message("ledger properties error: %s", err)
	}

	// outgoing peer requests
	peers, err := messaging.NewPeers(&theConfiguration.Peering)
	if nil != err {
		log.Criticalf("peers initialise error: %s", err)
		exitwithstatus.Message("peers initialise error: %s", err)
	}
	defer peers.Close()

	node, err := transactor.New(key, database, properties, peers)
	if nil != err {
		log.Criticalf("transactor initialise error: %s", err)
		exitwithstatus.Message("transactor initialise error: %s", err)
	}

	// incoming peer requests
	server, err := messaging.NewServer(&theConfiguration.Peering, node)
	if nil != err {
		log.Criticalf("messaging server error: %s", err)
		exitwithstatus.Message("messaging server error: %s", err)
	}

	processes := background.Processes{
		properties,
		server,
		node,
	}
	processStopper := background.Start(processes, nil)
	defer processStopper.Stop()

	// start up the rpc background processes
	err = rpc.Initialise(&theConfiguration.ClientRPC, node, version)
	if nil != err {
		log.Criticalf("rpc initialise error: %s", err)
		exitwithstatus.Message("rpc initialise error: %s", err)
	}
	defer rpc.Finalise()

	// wait for CTRL-C before shutting down to allow manual testing
	if 0 == len(options["quiet"]) {
		fmt.Printf("\n\nWaiting for CTRL-C (SIGINT) or 'kill <pid>' (SIGTERM)…")
	}

	// turn Signals into channel messages
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	sig := <-ch
	log.Infof("received signal: %v", sig)
	if 0 == len(options["quiet"]) {
		fmt.Printf("\nreceived signal: %v\n", sig)
		fmt.Printf("\nshutting down…\n")
	}

	log.Info("shutting down…")
}
