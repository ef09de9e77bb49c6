// Copyright 2023 dmba Project Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package progress

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/atomic"
)

type spanKeyType string

var spanKeyName = spanKeyType(uuid.New().String())

type Status string

const (
	StatusRunning  Status = "Running"
	StatusComplete Status = "Complete"
	StatusFailed   Status = "Failed"
)

// Tracer owns root spans. An optional listener is notified whenever a span
// belonging to the tracer changes.
type Tracer struct {
	name     string
	spans    sync.Map
	listener func(Progress)
}

func NewTracer(name string) *Tracer {
	return &Tracer{name: name}
}

// OnUpdate registers a listener. It must be set before spans are started.
func (t *Tracer) OnUpdate(listener func(Progress)) *Tracer {
	t.listener = listener
	return t
}

// Start creates a root span.
func (t *Tracer) Start(ctx context.Context, name string, total int) (context.Context, *Span) {
	span := newSpan(t, name, total)
	t.spans.Store(name, span)
	return context.WithValue(ctx, spanKeyName, span), span
}

// List returns the progress of root spans ordered by start time.
func (t *Tracer) List() []Progress {
	var progress []Progress
	t.spans.Range(func(_, value interface{}) bool {
		progress = append(progress, value.(*Span).Progress())
		return true
	})
	sort.SliceStable(progress, func(i, j int) bool {
		return progress[i].StartTime.Before(progress[j].StartTime)
	})
	return progress
}

type Span struct {
	tracer   *Tracer
	name     string
	total    int
	count    atomic.Int64
	start    time.Time
	children sync.Map

	mu     sync.Mutex
	status Status
	err    error
	finish time.Time
}

func newSpan(tracer *Tracer, name string, total int) *Span {
	return &Span{
		tracer: tracer,
		name:   name,
		total:  total,
		status: StatusRunning,
		start:  time.Now(),
	}
}

func (s *Span) Add(n int) {
	s.count.Add(int64(n))
	s.notify()
}

func (s *Span) End() {
	s.mu.Lock()
	if s.status == StatusRunning {
		s.status = StatusComplete
	}
	s.finish = time.Now()
	s.mu.Unlock()
	s.count.Store(int64(s.total))
	s.notify()
}

func (s *Span) Fail(err error) {
	s.mu.Lock()
	s.status = StatusFailed
	s.err = err
	s.finish = time.Now()
	s.mu.Unlock()
	s.notify()
}

func (s *Span) Count() int {
	return int(s.count.Load())
}

func (s *Span) Total() int {
	return s.total
}

func (s *Span) Progress() Progress {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := Progress{
		Name:       s.name,
		Status:     s.status,
		Count:      int(s.count.Load()),
		Total:      s.total,
		StartTime:  s.start,
		FinishTime: s.finish,
	}
	if s.tracer != nil {
		p.Tracer = s.tracer.name
	}
	if s.err != nil {
		p.Error = s.err.Error()
	}
	s.children.Range(func(_, value interface{}) bool {
		p.Children = append(p.Children, value.(*Span).Progress())
		return true
	})
	sort.SliceStable(p.Children, func(i, j int) bool {
		return p.Children[i].StartTime.Before(p.Children[j].StartTime)
	})
	return p
}

func (s *Span) notify() {
	if s.tracer != nil && s.tracer.listener != nil {
		s.tracer.listener(s.Progress())
	}
}

// Start creates a child span of the span carried by ctx. Without a parent
// span the returned span is detached and reports to nobody.
func Start(ctx context.Context, name string, total int) (context.Context, *Span) {
	if ctx == nil {
		ctx = context.Background()
	}
	parent, ok := ctx.Value(spanKeyName).(*Span)
	if !ok {
		span := newSpan(nil, name, total)
		return context.WithValue(ctx, spanKeyName, span), span
	}
	span := newSpan(parent.tracer, name, total)
	parent.children.Store(name, span)
	return context.WithValue(ctx, spanKeyName, span), span
}

// Fail marks the span carried by ctx as failed.
func Fail(ctx context.Context, err error) {
	if span, ok := ctx.Value(spanKeyName).(*Span); ok {
		span.Fail(err)
	}
}

type Progress struct {
	Tracer     string
	Name       string
	Status     Status
	Error      string
	Count      int
	Total      int
	StartTime  time.Time
	FinishTime time.Time
	Children   []Progress
}
