// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package flux_test

import (
	"testing"

	"code.hybscloud.com/flux"
)

func TestSchedFIFO(t *testing.T) {
	skipRace(t)
	s := flux.NewSched(flux.DefaultModel)
	var order []int
	for i := range 3 {
		s.Execute(func() { order = append(order, i) })
	}
	for i := range 3 {
		if !s.Tick() {
			t.Fatalf("queue empty after %d ticks", i)
		}
	}
	if len(order) != 3 || order[0] != 0 || order[1] != 1 || order[2] != 2 {
		t.Fatalf("got %v, want [0 1 2]", order)
	}
}

func TestSchedTickEmpty(t *testing.T) {
	skipRace(t)
	s := flux.NewSched(flux.DefaultModel)
	if s.Tick() {
		t.Fatal("Tick reported work on an empty queue")
	}
}

func TestSchedDrainNested(t *testing.T) {
	skipRace(t)
	s := flux.NewSched(flux.DefaultModel)
	ran := 0
	s.Execute(func() {
		ran++
		s.Execute(func() { ran++ })
	})
	s.Drain()
	if ran != 2 {
		t.Fatalf("got %d tasks run, want 2", ran)
	}
}

func TestSchedModel(t *testing.T) {
	s := flux.NewSched(flux.Batched(16))
	if got := s.Model().BatchSize(); got != 16 {
		t.Fatalf("got %d, want 16", got)
	}
}
