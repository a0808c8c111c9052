// Copyright (c) 2025, Canonical Ltd.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package systemd

import (
	"context"
	"sync"
)

// Call records one FakeManager invocation.
type Call struct {
	Op   string
	Name string
}

// FakeManager is an in-memory Manager for tests. Start and Restart mark a
// unit running and clear its failed flag; Stop clears both.
type FakeManager struct {
	mu      sync.Mutex
	running map[string]bool
	failed  map[string]bool
	errs    map[string]error
	calls   []Call
}

// NewFakeManager returns an empty FakeManager.
func NewFakeManager() *FakeManager {
	return &FakeManager{
		running: map[string]bool{},
		failed:  map[string]bool{},
		errs:    map[string]error{},
	}
}

// SetRunning sets the running state reported for name.
func (f *FakeManager) SetRunning(name string, running bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.running[name] = running
}

// SetFailed sets the failed state reported for name.
func (f *FakeManager) SetFailed(name string, failed bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failed[name] = failed
}

// FailOn makes every call of op return err. A nil err clears it.
func (f *FakeManager) FailOn(op string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err == nil {
		delete(f.errs, op)
		return
	}
	f.errs[op] = err
}

// Calls returns a copy of the recorded calls.
func (f *FakeManager) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}

// CallCount returns how many times op was called.
func (f *FakeManager) CallCount(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c.Op == op {
			n++
		}
	}
	return n
}

// Reset forgets recorded calls.
func (f *FakeManager) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = nil
}

func (f *FakeManager) record(op, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, Call{Op: op, Name: name})
	return f.errs[op]
}

func (f *FakeManager) Start(_ context.Context, name string) error {
	if err := f.record("start", name); err != nil {
		return err
	}
	f.SetRunning(name, true)
	f.SetFailed(name, false)
	return nil
}

func (f *FakeManager) Stop(_ context.Context, name string) error {
	if err := f.record("stop", name); err != nil {
		return err
	}
	f.SetRunning(name, false)
	f.SetFailed(name, false)
	return nil
}

func (f *FakeManager) Restart(_ context.Context, name string) error {
	if err := f.record("restart", name); err != nil {
		return err
	}
	f.SetRunning(name, true)
	f.SetFailed(name, false)
	return nil
}

func (f *FakeManager) Enable(_ context.Context, name string) error {
	return f.record("enable", name)
}

func (f *FakeManager) Disable(_ context.Context, name string) error {
	return f.record("disable", name)
}

func (f *FakeManager) IsRunning(_ context.Context, name string) (bool, error) {
	if err := f.record("is-running", name); err != nil {
		return false, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.running[name], nil
}

func (f *FakeManager) HasFailed(_ context.Context, name string) (bool, error) {
	if err := f.record("has-failed", name); err != nil {
		return false, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.failed[name], nil
}

func (f *FakeManager) Reload(_ context.Context) error {
	return f.record("reload", "")
}
