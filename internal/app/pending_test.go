package app

import (
	"sync"
	"testing"
)

func TestPendingPathTakeClears(t *testing.T) {
	var p pendingPath

	if path, ok := p.take(); ok || path != "" {
		t.Fatalf("empty take = %q, %v", path, ok)
	}

	p.set("models/heart.glb")
	path, ok := p.take()
	if !ok || path != "models/heart.glb" {
		t.Fatalf("take = %q, %v", path, ok)
	}
	if _, ok := p.take(); ok {
		t.Error("second take should report nothing pending")
	}
}

func TestPendingPathConcurrentSetTake(t *testing.T) {
	var p pendingPath
	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			p.set("models/lungs.glb")
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			if path, ok := p.take(); ok && path != "models/lungs.glb" {
				t.Errorf("take = %q", path)
			}
		}
	}()
	wg.Wait()
}
