// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package fontatlas

import "testing"

func TestShelfFirstAllocationAtOrigin(t *testing.T) {
	a := newShelfAllocator(64, 64, 0)
	x, y, ok := a.allocate(10, 10)
	if !ok || x != 0 || y != 0 {
		t.Fatalf("got (%d, %d, %v), want (0, 0, true)", x, y, ok)
	}
}

func TestShelfPacksLeftToRight(t *testing.T) {
	a := newShelfAllocator(64, 64, 0)
	a.allocate(10, 10)
	x, y, ok := a.allocate(10, 10)
	if !ok || x != 10 || y != 0 {
		t.Fatalf("got (%d, %d, %v), want (10, 0, true)", x, y, ok)
	}
}

func TestShelfOpensNewRow(t *testing.T) {
	a := newShelfAllocator(32, 64, 0)
	a.allocate(20, 10)
	// Does not fit beside the first item.
	x, y, ok := a.allocate(20, 10)
	if !ok || x != 0 || y != 10 {
		t.Fatalf("got (%d, %d, %v), want (0, 10, true)", x, y, ok)
	}
}

func TestShelfPaddingSeparatesItems(t *testing.T) {
	a := newShelfAllocator(64, 64, 2)
	a.allocate(10, 10)
	x, _, ok := a.allocate(10, 10)
	if !ok || x != 12 {
		t.Fatalf("x = %d, want 12", x)
	}
}

func TestShelfLastRowGrowsForTallItem(t *testing.T) {
	a := newShelfAllocator(64, 64, 0)
	a.allocate(10, 10)
	// Taller item still fits on the same shelf by extending it.
	x, y, ok := a.allocate(10, 20)
	if !ok || x != 10 || y != 0 {
		t.Fatalf("got (%d, %d, %v), want (10, 0, true)", x, y, ok)
	}
	// The shelf is now 20 tall, so the next row starts at 20.
	a.allocate(60, 5)
	_, y, _ = a.allocate(60, 5)
	if y != 20 {
		t.Errorf("next shelf y = %d, want 20", y)
	}
}

func TestShelfRejectsWhenFull(t *testing.T) {
	a := newShelfAllocator(16, 16, 0)
	if _, _, ok := a.allocate(16, 16); !ok {
		t.Fatal("exact fit rejected")
	}
	if _, _, ok := a.allocate(1, 1); ok {
		t.Fatal("allocation in a full atlas succeeded")
	}
}

func TestShelfRejectsOversized(t *testing.T) {
	a := newShelfAllocator(16, 16, 0)
	if _, _, ok := a.allocate(17, 4); ok {
		t.Fatal("item wider than the atlas accepted")
	}
	if _, _, ok := a.allocate(4, 17); ok {
		t.Fatal("item taller than the atlas accepted")
	}
}

func TestShelfReset(t *testing.T) {
	a := newShelfAllocator(16, 16, 0)
	a.allocate(16, 16)
	a.reset()
	if a.utilization() != 0 {
		t.Errorf("utilization after reset = %v", a.utilization())
	}
	if x, y, ok := a.allocate(16, 16); !ok || x != 0 || y != 0 {
		t.Fatalf("reset allocator rejected full-size item: (%d, %d, %v)", x, y, ok)
	}
}

func TestShelfUtilization(t *testing.T) {
	a := newShelfAllocator(10, 10, 0)
	a.allocate(5, 10)
	if got := a.utilization(); got != 0.5 {
		t.Errorf("utilization = %v, want 0.5", got)
	}
}
