package fx

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"context"
	"errors"
	"time"
)

// Task is a unit of work queued for a node. A task may block (e.g., wait for an
// animation to settle); the next task of its channel starts only after it has
// returned. Returning an error discards all remaining tasks of the channel.
type Task[N comparable] func(ctx context.Context, node N) error

// channelQueue is the FIFO of one (node, channel) pair. While running is set,
// tasks[0] is the task in flight.
type channelQueue[N comparable] struct {
	node    N
	name    string
	tasks   []Task[N]
	running bool
}

// Enqueue appends a task to a node's channel. If nothing is in flight for the
// channel, the task is started right away (on a goroutine of its own).
// Different channels of a node, and different nodes, run independently.
//
// An empty channel name denotes DefaultChannel.
func (e *Engine[N]) Enqueue(node N, channel string, task Task[N]) {
	if task == nil {
		return
	}
	if channel == "" {
		channel = DefaultChannel
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		tracer().Infof("task for %v/%s dropped: engine closed", node, channel)
		return
	}
	chans, found := e.queues[node]
	if !found {
		chans = make(map[string]*channelQueue[N])
		e.queues[node] = chans
	}
	q, found := chans[channel]
	if !found {
		q = &channelQueue[N]{node: node, name: channel}
		chans[channel] = q
	}
	q.tasks = append(q.tasks, task)
	if !q.running {
		q.running = true
		go e.drain(q)
	}
}

// Delay enqueues a pause of duration d on a node's channel.
func (e *Engine[N]) Delay(node N, channel string, d time.Duration) {
	e.Enqueue(node, channel, func(ctx context.Context, _ N) error {
		timer := time.NewTimer(d)
		defer timer.Stop()
		select {
		case <-timer.C:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	})
}

// ClearQueue discards all tasks of a node which have not been started yet,
// either of the named channels or, if no channel is given, of all channels.
// A task in flight is not interrupted; tasks enqueued after clearing will
// wait for it to return.
func (e *Engine[N]) ClearQueue(node N, channels ...string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.clearChannels(node, channels)
}

// Queued returns the number of tasks of a node's channel, including a task in
// flight.
func (e *Engine[N]) Queued(node N, channel string) int {
	if channel == "" {
		channel = DefaultChannel
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if q, found := e.queues[node][channel]; found {
		return len(q.tasks)
	}
	return 0
}

// Channels returns the number of non-empty channels of a node.
func (e *Engine[N]) Channels(node N) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.queues[node])
}

// AnimateTask creates a task which starts an animation and waits for it to
// settle. A stopped-unfinished animation thus discards the rest of its channel.
func (e *Engine[N]) AnimateTask(step StepFunc[N], opts ...AnimOption) Task[N] {
	return func(ctx context.Context, node N) error {
		return e.Start(node, step, opts...).Wait(ctx)
	}
}

func (e *Engine[N]) clearChannels(node N, channels []string) {
	chans, found := e.queues[node]
	if !found {
		return
	}
	if len(channels) == 0 {
		for _, q := range chans {
			e.clearChannel(q)
		}
		return
	}
	for _, name := range channels {
		if name == "" {
			name = DefaultChannel
		}
		if q, ok := chans[name]; ok {
			e.clearChannel(q)
		}
	}
}

func (e *Engine[N]) clearChannel(q *channelQueue[N]) {
	if q.running && len(q.tasks) > 0 {
		q.tasks = q.tasks[:1:1]
		return
	}
	q.tasks = nil
	e.prune(q)
}

// prune removes an empty, idle channel from the queue map.
func (e *Engine[N]) prune(q *channelQueue[N]) {
	chans := e.queues[q.node]
	if chans[q.name] != q {
		return
	}
	delete(chans, q.name)
	if len(chans) == 0 {
		delete(e.queues, q.node)
	}
}

// drain executes the tasks of a channel one after another until the channel
// runs empty or a task fails.
func (e *Engine[N]) drain(q *channelQueue[N]) {
	for {
		e.mu.Lock()
		if len(q.tasks) == 0 {
			q.running = false
			e.prune(q)
			e.mu.Unlock()
			tracer().Debugf("queue %v/%s drained", q.node, q.name)
			return
		}
		task := q.tasks[0]
		e.mu.Unlock()
		err := task(e.ctx, q.node)
		e.mu.Lock()
		if err != nil {
			q.tasks = nil
			q.running = false
			e.prune(q)
			e.mu.Unlock()
			if errors.Is(err, ErrStopped) {
				tracer().Debugf("task on %v/%s cancelled, queue discarded", q.node, q.name)
			} else {
				tracer().Errorf("task on %v/%s failed, queue discarded: %v", q.node, q.name, err)
			}
			if e.onError != nil {
				e.onError(q.name, err)
			}
			return
		}
		if len(q.tasks) > 0 {
			q.tasks = q.tasks[1:]
		}
		e.mu.Unlock()
	}
}
