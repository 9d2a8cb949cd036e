/*
Package roster is the state core of a list-editing screen built on unidirectional data flow.

A screen shows an ordered list of contacts and can present at most one overlay at a
time: an editor for a new contact, or a confirmation prompt before a deletion. Every
user intent is an Action; a single pure transition function turns (state, action)
into the next state. Actions aimed at an overlay that is no longer presented are
dropped, so late taps from a dismissed dialog can never corrupt the list.

# Architecture

The core lives in pkg/domain (values) and internal/runtime (the transition function).
Hosts talk to a Store, which serialises dispatch, persists snapshots through a
ports.StateStore and streams diffs to observers. Adapters for memory, the local
filesystem and Redis are provided, as are HTTP, MCP and terminal front ends.

# Usage

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/aretw0/roster"
		"github.com/aretw0/roster/pkg/domain"
	)

	func main() {
		ctx := context.Background()
		store, err := roster.New(ctx)
		if err != nil {
			log.Fatal(err)
		}

		store.Send(ctx, domain.AddButtonTapped{})
		store.Send(ctx, domain.AddContactAction{Action: domain.EditorSetName{Name: "Blob"}})
		state, _ := store.Send(ctx, domain.AddContactAction{Action: domain.EditorSaveTapped{}})

		fmt.Println(state.Contacts.Len()) // 1
	}

# Durable Sessions

Pass WithStateStore to resume a screen across restarts. For many concurrent screens,
use pkg/session, which keeps one live Store per session id.
*/
package roster
