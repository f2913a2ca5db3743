// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package fbgraph

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"testing"
)

// TestConcurrentFetch tests that one client and node serve parallel operations
func TestConcurrentFetch(t *testing.T) {
	gs := newGraphServer(t, http.StatusOK, `{"id":"1","name":"Alice"}`)
	client := newTestClient(t, gs)
	node := client.Node("me", WithAccessToken("token"))

	numOps := 20
	var wg sync.WaitGroup
	errChan := make(chan error, numOps)

	for i := 0; i < numOps; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			fetched, err := node.Fetch(context.Background(),
				Param("fields", String(fmt.Sprintf("name,%d", idx))))
			if err != nil {
				errChan <- err
				return
			}
			if fetched.Get("name").String() != "Alice" {
				errChan <- fmt.Errorf("op %d: unexpected name %q", idx, fetched.Get("name").String())
			}
		}(i)
	}

	wg.Wait()
	close(errChan)

	for err := range errChan {
		t.Error(err)
	}
	if gs.count() != numOps {
		t.Errorf("requests = %d, want %d", gs.count(), numOps)
	}
	if node.Identifier() != "me" {
		t.Errorf("shared node was modified")
	}
}

// TestConcurrentMixedOperations tests that different operations can share a client
func TestConcurrentMixedOperations(t *testing.T) {
	gs := newGraphServer(t, http.StatusOK, `true`)
	client := newTestClient(t, gs)
	node := client.Node("me")

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(3)
		go func() {
			defer wg.Done()
			_, _ = node.Update(context.Background(), Param("message", String("hi")))
		}()
		go func() {
			defer wg.Done()
			_, _ = node.Destroy(context.Background(), OnConnection("likes"))
		}()
		go func() {
			defer wg.Done()
			_, _ = node.Connection(context.Background(), "friends")
		}()
	}
	wg.Wait()

	if gs.count() != 30 {
		t.Errorf("requests = %d, want 30", gs.count())
	}
}
